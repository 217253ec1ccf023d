package postgres

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

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// crud implementa clinic.Repository[T] con una fila gorm R por detrás.
type crud[R, T any] struct {
	db      *gorm.DB
	entity  clinic.Entity
	id      func(*T) *int64
	rowID   func(*R) int64
	toRow   func(*T) R
	fromRow func(*R) T
	preload func(*gorm.DB) *gorm.DB
}

func (c crud[R, T]) Create(ctx context.Context, v *T) error {
	row := c.toRow(v)
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return translate(err, c.entity, 0)
	}
	*c.id(v) = c.rowID(&row)
	return nil
}

func (c crud[R, T]) Get(ctx context.Context, id int64) (T, error) {
	var row R
	if err := c.preload(c.db.WithContext(ctx)).First(&row, id).Error; err != nil {
		var zero T
		return zero, translate(err, c.entity, id)
	}
	return c.fromRow(&row), nil
}

func (c crud[R, T]) List(ctx context.Context) ([]T, error) {
	m, err := metaOf(c.entity)
	if err != nil {
		return nil, err
	}
	var rows []R
	if err := c.preload(c.db.WithContext(ctx)).Order(m.pk).Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list %s", c.entity)
	}
	return mapRows(rows, c.fromRow), nil
}

// Update pisa todas las columnas (Select("*")), incluidos los NULL de un PATCH.
func (c crud[R, T]) Update(ctx context.Context, v *T) error {
	row := c.toRow(v)
	res := c.db.WithContext(ctx).
		Model(&row).
		Select("*").
		Omit(clause.Associations).
		Updates(&row)
	if res.Error != nil {
		return translate(res.Error, c.entity, *c.id(v))
	}
	if res.RowsAffected == 0 {
		return clinic.NotFound(c.entity, *c.id(v))
	}
	return nil
}

func (c crud[R, T]) Delete(ctx context.Context, id int64) error {
	res := c.db.WithContext(ctx).Delete(new(R), id)
	if res.Error != nil {
		return translate(res.Error, c.entity, id)
	}
	if res.RowsAffected == 0 {
		return clinic.NotFound(c.entity, id)
	}
	return nil
}

func orderedBy(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(column) }
}

func noPreload(db *gorm.DB) *gorm.DB { return db }

type ownerRepo struct {
	crud[ownerRow, clinic.PetOwner]
}

func NewOwnerRepo(db *gorm.DB) owners.Repository {
	return &ownerRepo{crud[ownerRow, clinic.PetOwner]{
		db:     db,
		entity: clinic.EntityPetOwner,
		id:     func(o *clinic.PetOwner) *int64 { return &o.ID },
		rowID:  func(r *ownerRow) int64 { return r.ID },
		toRow:  ownerToRow,
		fromRow: func(r *ownerRow) clinic.PetOwner {
			o := ownerFromRow(r)
			o.Pets = mapRows(r.Pets, petFromRow)
			o.Appointments = mapRows(r.Appointments, appointmentFromRow)
			o.Invoices = mapRows(r.Invoices, invoiceFromRow)
			return o
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.
				Preload("Pets", orderedBy("pet_id")).
				Preload("Appointments", orderedBy("appointment_id")).
				Preload("Invoices", orderedBy("invoice_id"))
		},
	}}
}

func (r *ownerRepo) FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error) {
	var row ownerRow
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clinic.PetOwner{}, false, nil
	}
	if err != nil {
		return clinic.PetOwner{}, false, errors.Wrap(err, "find owner by email")
	}
	return ownerFromRow(&row), true, nil
}

type staffRepo struct {
	crud[staffRow, clinic.Staff]
}

func NewStaffRepo(db *gorm.DB) staff.Repository {
	return &staffRepo{crud[staffRow, clinic.Staff]{
		db:     db,
		entity: clinic.EntityStaff,
		id:     func(m *clinic.Staff) *int64 { return &m.ID },
		rowID:  func(r *staffRow) int64 { return r.ID },
		toRow:  staffToRow,
		fromRow: func(r *staffRow) clinic.Staff {
			m := staffFromRow(r)
			m.Appointments = mapRows(r.Appointments, appointmentFromRow)
			m.MedicalRecords = mapRows(r.MedicalRecords, recordFromRow)
			return m
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.
				Preload("Appointments", orderedBy("appointment_id")).
				Preload("MedicalRecords", orderedBy("record_id"))
		},
	}}
}

func (r *staffRepo) FindByEmail(ctx context.Context, email string) (clinic.Staff, bool, error) {
	var row staffRow
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clinic.Staff{}, false, nil
	}
	if err != nil {
		return clinic.Staff{}, false, errors.Wrap(err, "find staff by email")
	}
	return staffFromRow(&row), true, nil
}

func NewPetRepo(db *gorm.DB) pets.Repository {
	return crud[petRow, clinic.Pet]{
		db:     db,
		entity: clinic.EntityPet,
		id:     func(p *clinic.Pet) *int64 { return &p.ID },
		rowID:  func(r *petRow) int64 { return r.ID },
		toRow:  petToRow,
		fromRow: func(r *petRow) clinic.Pet {
			p := petFromRow(r)
			p.Owner = optRow(r.Owner, ownerFromRow)
			p.Appointments = mapRows(r.Appointments, appointmentFromRow)
			p.MedicalRecords = mapRows(r.MedicalRecords, recordFromRow)
			return p
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.
				Preload("Owner").
				Preload("Appointments", orderedBy("appointment_id")).
				Preload("MedicalRecords", orderedBy("record_id"))
		},
	}
}

func NewServiceRepo(db *gorm.DB) catalog.Repository {
	return crud[serviceRow, clinic.Service]{
		db:      db,
		entity:  clinic.EntityService,
		id:      func(v *clinic.Service) *int64 { return &v.ID },
		rowID:   func(r *serviceRow) int64 { return r.ID },
		toRow:   serviceToRow,
		fromRow: serviceFromRow,
		preload: noPreload,
	}
}

func NewAppointmentRepo(db *gorm.DB) appointments.Repository {
	return crud[appointmentRow, clinic.Appointment]{
		db:     db,
		entity: clinic.EntityAppointment,
		id:     func(a *clinic.Appointment) *int64 { return &a.ID },
		rowID:  func(r *appointmentRow) int64 { return r.ID },
		toRow:  appointmentToRow,
		fromRow: func(r *appointmentRow) clinic.Appointment {
			a := appointmentFromRow(r)
			a.Pet = optRow(r.Pet, petFromRow)
			a.Service = optRow(r.Service, serviceFromRow)
			a.Staff = optRow(r.Staff, staffFromRow)
			a.Owner = optRow(r.Owner, ownerFromRow)
			a.MedicalRecord = optRow(r.MedicalRecord, recordFromRow)
			a.Invoice = optRow(r.Invoice, invoiceFromRow)
			return a
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.
				Preload("Pet").
				Preload("Service").
				Preload("Staff").
				Preload("Owner").
				Preload("MedicalRecord").
				Preload("Invoice")
		},
	}
}

func NewMedicalRecordRepo(db *gorm.DB) medicalrecords.Repository {
	return crud[medicalRecordRow, clinic.MedicalRecord]{
		db:     db,
		entity: clinic.EntityMedicalRecord,
		id:     func(m *clinic.MedicalRecord) *int64 { return &m.ID },
		rowID:  func(r *medicalRecordRow) int64 { return r.ID },
		toRow:  recordToRow,
		fromRow: func(r *medicalRecordRow) clinic.MedicalRecord {
			m := recordFromRow(r)
			m.Appointment = optRow(r.Appointment, appointmentFromRow)
			m.Pet = optRow(r.Pet, petFromRow)
			m.Staff = optRow(r.Staff, staffFromRow)
			return m
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Appointment").Preload("Pet").Preload("Staff")
		},
	}
}

func NewInvoiceRepo(db *gorm.DB) invoices.Repository {
	return crud[invoiceRow, clinic.Invoice]{
		db:     db,
		entity: clinic.EntityInvoice,
		id:     func(i *clinic.Invoice) *int64 { return &i.ID },
		rowID:  func(r *invoiceRow) int64 { return r.ID },
		toRow:  invoiceToRow,
		fromRow: func(r *invoiceRow) clinic.Invoice {
			i := invoiceFromRow(r)
			i.Appointment = optRow(r.Appointment, appointmentFromRow)
			i.Owner = optRow(r.Owner, ownerFromRow)
			return i
		},
		preload: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Appointment").Preload("Owner")
		},
	}
}
