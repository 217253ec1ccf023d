package memory

import (
	"context"
	"strings"

	"pet-clinic/internal/domain/appointments"
	"pet-clinic/internal/domain/catalog"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/invoices"
	"pet-clinic/internal/domain/medicalrecords"
	"pet-clinic/internal/domain/owners"
	"pet-clinic/internal/domain/pets"
	"pet-clinic/internal/domain/staff"
)

type ownerRepo struct {
	crud[clinic.PetOwner]
}

func NewOwnerRepo(s *Store) owners.Repository {
	return &ownerRepo{crud[clinic.PetOwner]{
		s:      s,
		entity: clinic.EntityPetOwner,
		table:  func(s *Store) *table[clinic.PetOwner] { return s.owners },
		id:     func(o *clinic.PetOwner) *int64 { return &o.ID },
		bare:   clinic.PetOwner.Bare,
		fill: func(s *Store, o *clinic.PetOwner) {
			o.Pets = make([]clinic.Pet, 0)
			for _, p := range s.pets.list() {
				if p.OwnerID == o.ID {
					o.Pets = append(o.Pets, p)
				}
			}
			o.Appointments = appointmentsWhere(s, "owner_id", o.ID)
			o.Invoices = invoicesWhere(s, "owner_id", o.ID)
		},
		unique: func(s *Store, o clinic.PetOwner, selfID int64) error {
			for _, other := range s.owners.list() {
				if other.ID != selfID && strings.EqualFold(other.Email, o.Email) {
					return emailTaken(o.Email)
				}
			}
			return nil
		},
	}}
}

func (r *ownerRepo) FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners.list() {
		if strings.EqualFold(o.Email, strings.TrimSpace(email)) {
			return o, true, nil
		}
	}
	return clinic.PetOwner{}, false, nil
}

// emailTaken usa el mismo mensaje que el chequeo del service.
func emailTaken(email string) error {
	return clinic.Conflict("Email %s is already registered", email)
}

type staffRepo struct {
	crud[clinic.Staff]
}

func NewStaffRepo(s *Store) staff.Repository {
	return &staffRepo{crud[clinic.Staff]{
		s:      s,
		entity: clinic.EntityStaff,
		table:  func(s *Store) *table[clinic.Staff] { return s.staff },
		id:     func(m *clinic.Staff) *int64 { return &m.ID },
		bare:   clinic.Staff.Bare,
		fill: func(s *Store, m *clinic.Staff) {
			m.Appointments = appointmentsWhere(s, "staff_id", m.ID)
			m.MedicalRecords = recordsWhere(s, "staff_id", m.ID)
		},
		unique: func(s *Store, m clinic.Staff, selfID int64) error {
			for _, other := range s.staff.list() {
				if other.ID != selfID && strings.EqualFold(other.Email, m.Email) {
					return emailTaken(m.Email)
				}
			}
			return nil
		},
	}}
}

func (r *staffRepo) FindByEmail(ctx context.Context, email string) (clinic.Staff, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.staff.list() {
		if strings.EqualFold(m.Email, strings.TrimSpace(email)) {
			return m, true, nil
		}
	}
	return clinic.Staff{}, false, nil
}

func NewPetRepo(s *Store) pets.Repository {
	return crud[clinic.Pet]{
		s:      s,
		entity: clinic.EntityPet,
		table:  func(s *Store) *table[clinic.Pet] { return s.pets },
		id:     func(p *clinic.Pet) *int64 { return &p.ID },
		bare:   clinic.Pet.Bare,
		fk:     clinic.Pet.FK,
		fill: func(s *Store, p *clinic.Pet) {
			p.Owner = s.ownerRef(&p.OwnerID)
			p.Appointments = appointmentsWhere(s, "pet_id", p.ID)
			p.MedicalRecords = recordsWhere(s, "pet_id", p.ID)
		},
	}
}

func NewServiceRepo(s *Store) catalog.Repository {
	return crud[clinic.Service]{
		s:      s,
		entity: clinic.EntityService,
		table:  func(s *Store) *table[clinic.Service] { return s.services },
		id:     func(v *clinic.Service) *int64 { return &v.ID },
		bare:   func(v clinic.Service) clinic.Service { return v },
		fill:   func(*Store, *clinic.Service) {},
	}
}

func NewAppointmentRepo(s *Store) appointments.Repository {
	return crud[clinic.Appointment]{
		s:      s,
		entity: clinic.EntityAppointment,
		table:  func(s *Store) *table[clinic.Appointment] { return s.appointments },
		id:     func(a *clinic.Appointment) *int64 { return &a.ID },
		bare:   clinic.Appointment.Bare,
		fk:     clinic.Appointment.FK,
		fill: func(s *Store, a *clinic.Appointment) {
			a.Pet = s.petRef(&a.PetID)
			a.Service = s.serviceRef(a.ServiceID)
			a.Staff = s.staffRef(&a.StaffID)
			a.Owner = s.ownerRef(a.OwnerID)
			if recs := recordsWhere(s, "appointment_id", a.ID); len(recs) > 0 {
				a.MedicalRecord = &recs[0]
			}
			if invs := invoicesWhere(s, "appointment_id", a.ID); len(invs) > 0 {
				a.Invoice = &invs[0]
			}
		},
	}
}

func NewMedicalRecordRepo(s *Store) medicalrecords.Repository {
	return crud[clinic.MedicalRecord]{
		s:      s,
		entity: clinic.EntityMedicalRecord,
		table:  func(s *Store) *table[clinic.MedicalRecord] { return s.records },
		id:     func(m *clinic.MedicalRecord) *int64 { return &m.ID },
		bare:   clinic.MedicalRecord.Bare,
		fk:     clinic.MedicalRecord.FK,
		fill: func(s *Store, m *clinic.MedicalRecord) {
			m.Appointment = s.appointmentRef(m.AppointmentID)
			m.Pet = s.petRef(m.PetID)
			m.Staff = s.staffRef(m.StaffID)
		},
	}
}

func NewInvoiceRepo(s *Store) invoices.Repository {
	return crud[clinic.Invoice]{
		s:      s,
		entity: clinic.EntityInvoice,
		table:  func(s *Store) *table[clinic.Invoice] { return s.invoices },
		id:     func(i *clinic.Invoice) *int64 { return &i.ID },
		bare:   clinic.Invoice.Bare,
		fk:     clinic.Invoice.FK,
		fill: func(s *Store, i *clinic.Invoice) {
			i.Appointment = s.appointmentRef(i.AppointmentID)
			i.Owner = s.ownerRef(i.OwnerID)
		},
	}
}
