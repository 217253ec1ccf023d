package postgres

import (
	"time"

	"pet-clinic/internal/domain/clinic"
)

// Filas gorm. Los timestamps los pone el service, por eso autoCreateTime/autoUpdateTime:false.

type ownerRow struct {
	ID        int64     `gorm:"column:owner_id;primaryKey;autoIncrement"`
	FullName  string    `gorm:"column:full_name;size:100;not null"`
	Phone     string    `gorm:"column:phone;size:20;not null"`
	Email     string    `gorm:"column:email;size:100;not null;uniqueIndex"`
	Password  string    `gorm:"column:password;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Pets         []petRow         `gorm:"foreignKey:OwnerID"`
	Appointments []appointmentRow `gorm:"foreignKey:OwnerID"`
	Invoices     []invoiceRow     `gorm:"foreignKey:OwnerID"`
}

func (ownerRow) TableName() string { return "pet_owners" }

type petRow struct {
	ID        int64     `gorm:"column:pet_id;primaryKey;autoIncrement"`
	OwnerID   int64     `gorm:"column:owner_id;not null;index"`
	Name      string    `gorm:"column:name;size:100;not null"`
	Species   string    `gorm:"column:species;size:50;not null"`
	Gender    string    `gorm:"column:gender;size:10;not null"`
	DOB       time.Time `gorm:"column:dob;type:date;not null"`
	Weight    float64   `gorm:"column:weight;type:numeric(5,2);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Owner          *ownerRow          `gorm:"foreignKey:OwnerID"`
	Appointments   []appointmentRow   `gorm:"foreignKey:PetID"`
	MedicalRecords []medicalRecordRow `gorm:"foreignKey:PetID"`
}

func (petRow) TableName() string { return "pets" }

type staffRow struct {
	ID        int64     `gorm:"column:staff_id;primaryKey;autoIncrement"`
	FullName  string    `gorm:"column:full_name;size:100;not null"`
	Role      string    `gorm:"column:role;size:50;not null"`
	Phone     string    `gorm:"column:phone;size:20;not null"`
	Email     string    `gorm:"column:email;size:100;not null;uniqueIndex"`
	Password  string    `gorm:"column:password;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Appointments   []appointmentRow   `gorm:"foreignKey:StaffID"`
	MedicalRecords []medicalRecordRow `gorm:"foreignKey:StaffID"`
}

func (staffRow) TableName() string { return "staff" }

type serviceRow struct {
	ID          int64     `gorm:"column:service_id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:service_name;size:100;not null"`
	Description *string   `gorm:"column:description;type:text"`
	Price       float64   `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (serviceRow) TableName() string { return "services" }

type appointmentRow struct {
	ID        int64     `gorm:"column:appointment_id;primaryKey;autoIncrement"`
	PetID     int64     `gorm:"column:pet_id;not null;index"`
	ServiceID int64     `gorm:"column:service_id;not null"`
	StaffID   int64     `gorm:"column:staff_id;not null;index"`
	OwnerID   *int64    `gorm:"column:owner_id;index"`
	Date      time.Time `gorm:"column:appointment_date;not null"`
	Status    string    `gorm:"column:status;size:10;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Pet           *petRow           `gorm:"foreignKey:PetID"`
	Service       *serviceRow       `gorm:"foreignKey:ServiceID"`
	Staff         *staffRow         `gorm:"foreignKey:StaffID"`
	Owner         *ownerRow         `gorm:"foreignKey:OwnerID"`
	MedicalRecord *medicalRecordRow `gorm:"foreignKey:AppointmentID"`
	Invoice       *invoiceRow       `gorm:"foreignKey:AppointmentID"`
}

func (appointmentRow) TableName() string { return "appointments" }

type medicalRecordRow struct {
	ID            int64     `gorm:"column:record_id;primaryKey;autoIncrement"`
	AppointmentID int64     `gorm:"column:appointment_id;not null;uniqueIndex"`
	PetID         *int64    `gorm:"column:pet_id"`
	StaffID       *int64    `gorm:"column:staff_id"`
	Diagnosis     string    `gorm:"column:diagnosis;type:text;not null"`
	Treatment     string    `gorm:"column:treatment;type:text;not null"`
	Note          *string   `gorm:"column:note;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime:false"`

	Appointment *appointmentRow `gorm:"foreignKey:AppointmentID"`
	Pet         *petRow         `gorm:"foreignKey:PetID"`
	Staff       *staffRow       `gorm:"foreignKey:StaffID"`
}

func (medicalRecordRow) TableName() string { return "medical_records" }

type invoiceRow struct {
	ID             int64      `gorm:"column:invoice_id;primaryKey;autoIncrement"`
	AppointmentID  int64      `gorm:"column:appointment_id;not null;uniqueIndex"`
	OwnerID        *int64     `gorm:"column:owner_id;index"`
	BaseAmount     float64    `gorm:"column:base_amount;type:numeric(10,2);not null"`
	AdditionalCost float64    `gorm:"column:additional_cost;type:numeric(10,2);not null"`
	TotalAmount    float64    `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentMethod  string     `gorm:"column:payment_method;size:50;not null"`
	PaymentStatus  string     `gorm:"column:payment_status;size:10;not null"`
	PaymentDate    *time.Time `gorm:"column:payment_date;type:date"`
	IssuedBy       string     `gorm:"column:issued_by;size:100;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime:false"`

	Appointment *appointmentRow `gorm:"foreignKey:AppointmentID"`
	Owner       *ownerRow       `gorm:"foreignKey:OwnerID"`
}

func (invoiceRow) TableName() string { return "invoices" }

// AllRows es el orden de AutoMigrate en tests (padres primero).
func AllRows() []any {
	return []any{
		&ownerRow{}, &staffRow{}, &serviceRow{}, &petRow{},
		&appointmentRow{}, &medicalRecordRow{}, &invoiceRow{},
	}
}

// Conversores fila <-> entidad. *FromRow no copia relaciones.

func ownerFromRow(r *ownerRow) clinic.PetOwner {
	return clinic.PetOwner{
		ID:           r.ID,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func ownerToRow(o *clinic.PetOwner) ownerRow {
	return ownerRow{
		ID:        o.ID,
		FullName:  o.FullName,
		Phone:     o.Phone,
		Email:     o.Email,
		Password:  o.PasswordHash,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func petFromRow(r *petRow) clinic.Pet {
	return clinic.Pet{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Species:   r.Species,
		Gender:    clinic.Gender(r.Gender),
		DOB:       clinic.DateOf(r.DOB),
		Weight:    r.Weight,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func petToRow(p *clinic.Pet) petRow {
	return petRow{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Gender:    string(p.Gender),
		DOB:       p.DOB.Time,
		Weight:    p.Weight,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func staffFromRow(r *staffRow) clinic.Staff {
	return clinic.Staff{
		ID:           r.ID,
		FullName:     r.FullName,
		Role:         r.Role,
		Phone:        r.Phone,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func staffToRow(m *clinic.Staff) staffRow {
	return staffRow{
		ID:        m.ID,
		FullName:  m.FullName,
		Role:      m.Role,
		Phone:     m.Phone,
		Email:     m.Email,
		Password:  m.PasswordHash,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func serviceFromRow(r *serviceRow) clinic.Service {
	return clinic.Service{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func serviceToRow(v *clinic.Service) serviceRow {
	return serviceRow{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func appointmentFromRow(r *appointmentRow) clinic.Appointment {
	return clinic.Appointment{
		ID:        r.ID,
		PetID:     r.PetID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		OwnerID:   r.OwnerID,
		Date:      r.Date.UTC(),
		Status:    clinic.AppointmentStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func appointmentToRow(a *clinic.Appointment) appointmentRow {
	return appointmentRow{
		ID:        a.ID,
		PetID:     a.PetID,
		ServiceID: a.ServiceID,
		StaffID:   a.StaffID,
		OwnerID:   a.OwnerID,
		Date:      a.Date,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func recordFromRow(r *medicalRecordRow) clinic.MedicalRecord {
	return clinic.MedicalRecord{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		PetID:         r.PetID,
		StaffID:       r.StaffID,
		Diagnosis:     r.Diagnosis,
		Treatment:     r.Treatment,
		Note:          r.Note,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func recordToRow(m *clinic.MedicalRecord) medicalRecordRow {
	return medicalRecordRow{
		ID:            m.ID,
		AppointmentID: m.AppointmentID,
		PetID:         m.PetID,
		StaffID:       m.StaffID,
		Diagnosis:     m.Diagnosis,
		Treatment:     m.Treatment,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

func invoiceFromRow(r *invoiceRow) clinic.Invoice {
	inv := clinic.Invoice{
		ID:             r.ID,
		AppointmentID:  r.AppointmentID,
		OwnerID:        r.OwnerID,
		BaseAmount:     r.BaseAmount,
		AdditionalCost: r.AdditionalCost,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
		PaymentStatus:  clinic.PaymentStatus(r.PaymentStatus),
		IssuedBy:       r.IssuedBy,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
	if r.PaymentDate != nil {
		d := clinic.DateOf(*r.PaymentDate)
		inv.PaymentDate = &d
	}
	return inv
}

func invoiceToRow(i *clinic.Invoice) invoiceRow {
	row := invoiceRow{
		ID:             i.ID,
		AppointmentID:  i.AppointmentID,
		OwnerID:        i.OwnerID,
		BaseAmount:     i.BaseAmount,
		AdditionalCost: i.AdditionalCost,
		TotalAmount:    i.TotalAmount,
		PaymentMethod:  i.PaymentMethod,
		PaymentStatus:  string(i.PaymentStatus),
		IssuedBy:       i.IssuedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
	if i.PaymentDate != nil {
		t := i.PaymentDate.Time
		row.PaymentDate = &t
	}
	return row
}

func mapRows[R, T any](rows []R, fn func(*R) T) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, fn(&rows[i]))
	}
	return out
}

func optRow[R, T any](row *R, fn func(*R) T) *T {
	if row == nil {
		return nil
	}
	v := fn(row)
	return &v
}
