package memory

import (
	"context"
	"sync"

	"pet-clinic/internal/domain/clinic"
)

// table es una tabla in-memory con ids secuenciales.
type table[T any] struct {
	seq   int64
	rows  map[int64]T
	order []int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) put(id int64, v T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) del(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// list devuelve en orden de inserción (= id asc).
func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// Store guarda las 7 tablas bajo un único lock: las relaciones se pueblan
// leyendo varias tablas y tienen que ver un estado consistente.
type Store struct {
	mu sync.RWMutex

	owners       *table[clinic.PetOwner]
	pets         *table[clinic.Pet]
	staff        *table[clinic.Staff]
	services     *table[clinic.Service]
	appointments *table[clinic.Appointment]
	records      *table[clinic.MedicalRecord]
	invoices     *table[clinic.Invoice]
}

func NewStore() *Store {
	return &Store{
		owners:       newTable[clinic.PetOwner](),
		pets:         newTable[clinic.Pet](),
		staff:        newTable[clinic.Staff](),
		services:     newTable[clinic.Service](),
		appointments: newTable[clinic.Appointment](),
		records:      newTable[clinic.MedicalRecord](),
		invoices:     newTable[clinic.Invoice](),
	}
}

var _ clinic.RefStore = (*Store)(nil)

func (s *Store) Exists(ctx context.Context, e clinic.Entity, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.has(e, id), nil
}

func (s *Store) Referencing(ctx context.Context, rel clinic.Relation, parentID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.referencing(rel, parentID), nil
}

func (s *Store) Delete(ctx context.Context, e clinic.Entity, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.remove(e, id) {
		return clinic.NotFound(e, id)
	}
	return nil
}

// has, referencing y remove asumen el lock tomado.

func (s *Store) has(e clinic.Entity, id int64) bool {
	switch e {
	case clinic.EntityPetOwner:
		return s.owners.has(id)
	case clinic.EntityPet:
		return s.pets.has(id)
	case clinic.EntityStaff:
		return s.staff.has(id)
	case clinic.EntityService:
		return s.services.has(id)
	case clinic.EntityAppointment:
		return s.appointments.has(id)
	case clinic.EntityMedicalRecord:
		return s.records.has(id)
	case clinic.EntityInvoice:
		return s.invoices.has(id)
	}
	return false
}

func (s *Store) referencing(rel clinic.Relation, parentID int64) []int64 {
	out := make([]int64, 0)
	match := func(id int64, fk *int64) {
		if fk != nil && *fk == parentID {
			out = append(out, id)
		}
	}

	switch rel.Child {
	case clinic.EntityPet:
		for _, p := range s.pets.list() {
			match(p.ID, p.FK(rel.Column))
		}
	case clinic.EntityAppointment:
		for _, a := range s.appointments.list() {
			match(a.ID, a.FK(rel.Column))
		}
	case clinic.EntityMedicalRecord:
		for _, m := range s.records.list() {
			match(m.ID, m.FK(rel.Column))
		}
	case clinic.EntityInvoice:
		for _, i := range s.invoices.list() {
			match(i.ID, i.FK(rel.Column))
		}
	}
	return out
}

func (s *Store) remove(e clinic.Entity, id int64) bool {
	switch e {
	case clinic.EntityPetOwner:
		return s.owners.del(id)
	case clinic.EntityPet:
		return s.pets.del(id)
	case clinic.EntityStaff:
		return s.staff.del(id)
	case clinic.EntityService:
		return s.services.del(id)
	case clinic.EntityAppointment:
		return s.appointments.del(id)
	case clinic.EntityMedicalRecord:
		return s.records.del(id)
	case clinic.EntityInvoice:
		return s.invoices.del(id)
	}
	return false
}

// Helpers de población (llamar con el lock tomado). Devuelven copias sin relaciones.

func (s *Store) ownerRef(id *int64) *clinic.PetOwner {
	if id == nil {
		return nil
	}
	o, ok := s.owners.get(*id)
	if !ok {
		return nil
	}
	return &o
}

func (s *Store) petRef(id *int64) *clinic.Pet {
	if id == nil {
		return nil
	}
	p, ok := s.pets.get(*id)
	if !ok {
		return nil
	}
	return &p
}

func (s *Store) staffRef(id *int64) *clinic.Staff {
	if id == nil {
		return nil
	}
	m, ok := s.staff.get(*id)
	if !ok {
		return nil
	}
	return &m
}

func (s *Store) serviceRef(id int64) *clinic.Service {
	v, ok := s.services.get(id)
	if !ok {
		return nil
	}
	return &v
}

func (s *Store) appointmentRef(id int64) *clinic.Appointment {
	a, ok := s.appointments.get(id)
	if !ok {
		return nil
	}
	return &a
}

func appointmentsWhere(s *Store, column string, id int64) []clinic.Appointment {
	out := make([]clinic.Appointment, 0)
	for _, a := range s.appointments.list() {
		if fk := a.FK(column); fk != nil && *fk == id {
			out = append(out, a)
		}
	}
	return out
}

func recordsWhere(s *Store, column string, id int64) []clinic.MedicalRecord {
	out := make([]clinic.MedicalRecord, 0)
	for _, m := range s.records.list() {
		if fk := m.FK(column); fk != nil && *fk == id {
			out = append(out, m)
		}
	}
	return out
}

func invoicesWhere(s *Store, column string, id int64) []clinic.Invoice {
	out := make([]clinic.Invoice, 0)
	for _, i := range s.invoices.list() {
		if fk := i.FK(column); fk != nil && *fk == id {
			out = append(out, i)
		}
	}
	return out
}
