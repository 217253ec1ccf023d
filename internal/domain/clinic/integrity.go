package clinic

import "context"

type DeletePolicy string

const (
	Restrict DeletePolicy = "restrict"
	Cascade  DeletePolicy = "cascade"
)

// Relation describe una FK: Child.Column -> Parent.
type Relation struct {
	Child    Entity
	Column   string
	Parent   Entity
	OnDelete DeletePolicy
	OneToOne bool
}

// Relations es la política de integridad referencial de la clínica.
// Todo es restrict salvo la historia clínica, que cae con su cita.
var Relations = []Relation{
	{Child: EntityPet, Column: "owner_id", Parent: EntityPetOwner, OnDelete: Restrict},
	{Child: EntityAppointment, Column: "pet_id", Parent: EntityPet, OnDelete: Restrict},
	{Child: EntityAppointment, Column: "service_id", Parent: EntityService, OnDelete: Restrict},
	{Child: EntityAppointment, Column: "staff_id", Parent: EntityStaff, OnDelete: Restrict},
	{Child: EntityAppointment, Column: "owner_id", Parent: EntityPetOwner, OnDelete: Restrict},
	{Child: EntityMedicalRecord, Column: "appointment_id", Parent: EntityAppointment, OnDelete: Cascade, OneToOne: true},
	{Child: EntityMedicalRecord, Column: "pet_id", Parent: EntityPet, OnDelete: Restrict},
	{Child: EntityMedicalRecord, Column: "staff_id", Parent: EntityStaff, OnDelete: Restrict},
	{Child: EntityInvoice, Column: "appointment_id", Parent: EntityAppointment, OnDelete: Restrict, OneToOne: true},
	{Child: EntityInvoice, Column: "owner_id", Parent: EntityPetOwner, OnDelete: Restrict},
}

// Refs mapea columna FK -> id referenciado. Las FKs nulas no van.
type Refs map[string]int64

// With agrega una FK opcional (nil = sin referencia).
func (r Refs) With(column string, id *int64) Refs {
	if id != nil {
		r[column] = *id
	}
	return r
}

type Integrity struct {
	store     RefStore
	relations []Relation
}

func NewIntegrity(store RefStore) *Integrity {
	return &Integrity{store: store, relations: Relations}
}

// CheckRefs verifica que cada FK apunte a una fila existente.
func (g *Integrity) CheckRefs(ctx context.Context, child Entity, refs Refs) error {
	for _, rel := range g.relations {
		if rel.Child != child {
			continue
		}
		id, ok := refs[rel.Column]
		if !ok {
			continue
		}
		exists, err := g.store.Exists(ctx, rel.Parent, id)
		if err != nil {
			return err
		}
		if !exists {
			return NotFound(rel.Parent, id)
		}
	}
	return nil
}

// CheckOneToOne falla si el padre de una relación 1-1 ya tiene otro hijo.
// selfID es 0 en un create.
func (g *Integrity) CheckOneToOne(ctx context.Context, child Entity, selfID int64, refs Refs) error {
	for _, rel := range g.relations {
		if rel.Child != child || !rel.OneToOne {
			continue
		}
		id, ok := refs[rel.Column]
		if !ok {
			continue
		}
		ids, err := g.store.Referencing(ctx, rel, id)
		if err != nil {
			return err
		}
		for _, other := range ids {
			if other != selfID {
				return Conflict("%s with ID %d already has a %s", rel.Parent.Label(), id, rel.Child.Label())
			}
		}
	}
	return nil
}

// BeforeDelete aplica la política al borrar parent/id: primero revisa todos
// los restrict (incluidos los de hijos en cascada) y recién después borra
// los hijos en cascada. El borrado del propio registro queda para el caller.
func (g *Integrity) BeforeDelete(ctx context.Context, parent Entity, id int64) error {
	if err := g.checkRestrict(ctx, parent, id); err != nil {
		return err
	}
	return g.cascade(ctx, parent, id)
}

func (g *Integrity) checkRestrict(ctx context.Context, parent Entity, id int64) error {
	for _, rel := range g.relations {
		if rel.Parent != parent {
			continue
		}
		ids, err := g.store.Referencing(ctx, rel, id)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}
		if rel.OnDelete == Restrict {
			return Conflict("%s with ID %d is referenced by %d %s record(s)", parent.Label(), id, len(ids), rel.Child.Label())
		}
		for _, childID := range ids {
			if err := g.checkRestrict(ctx, rel.Child, childID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Integrity) cascade(ctx context.Context, parent Entity, id int64) error {
	for _, rel := range g.relations {
		if rel.Parent != parent || rel.OnDelete != Cascade {
			continue
		}
		ids, err := g.store.Referencing(ctx, rel, id)
		if err != nil {
			return err
		}
		for _, childID := range ids {
			if err := g.cascade(ctx, rel.Child, childID); err != nil {
				return err
			}
			if err := g.store.Delete(ctx, rel.Child, childID); err != nil {
				return err
			}
		}
	}
	return nil
}
