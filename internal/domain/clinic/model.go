package clinic

import "time"

// Entity identifica cada tabla del modelo.
type Entity string

const (
	EntityPetOwner      Entity = "PetOwner"
	EntityPet           Entity = "Pet"
	EntityStaff         Entity = "Staff"
	EntityService       Entity = "Service"
	EntityAppointment   Entity = "Appointment"
	EntityMedicalRecord Entity = "MedicalRecord"
	EntityInvoice       Entity = "Invoice"
)

// Label es el nombre legible que va en los mensajes de error.
func (e Entity) Label() string {
	switch e {
	case EntityPetOwner:
		return "Pet Owner"
	case EntityMedicalRecord:
		return "Medical Record"
	default:
		return string(e)
	}
}

// Gender de la mascota.
// @Enum Male, Female
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// AppointmentStatus
// @Enum Pending, Completed, Canceled
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCanceled  AppointmentStatus = "Canceled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentCompleted, AppointmentCanceled:
		return true
	}
	return false
}

// PaymentStatus
// @Enum Pending, Paid, Canceled
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentCanceled PaymentStatus = "Canceled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCanceled:
		return true
	}
	return false
}

// PetOwner es el cliente de la clínica. Puede iniciar sesión.
type PetOwner struct {
	ID           int64     `json:"owner_id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Pets         []Pet         `json:"pets,omitempty"`
	Appointments []Appointment `json:"appointments,omitempty"`
	Invoices     []Invoice     `json:"invoices,omitempty"`
}

func (o PetOwner) Bare() PetOwner {
	o.Pets, o.Appointments, o.Invoices = nil, nil, nil
	return o
}

type Pet struct {
	ID        int64     `json:"pet_id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Gender    Gender    `json:"gender"`
	DOB       Date      `json:"dob" swaggertype:"string" format:"date"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner          *PetOwner       `json:"owner,omitempty"`
	Appointments   []Appointment   `json:"appointments,omitempty"`
	MedicalRecords []MedicalRecord `json:"medical_records,omitempty"`
}

func (p Pet) Bare() Pet {
	p.Owner, p.Appointments, p.MedicalRecords = nil, nil, nil
	return p
}

func (p Pet) FK(column string) *int64 {
	if column == "owner_id" {
		return &p.OwnerID
	}
	return nil
}

// Staff son los usuarios internos (vets, recepción). También inician sesión.
type Staff struct {
	ID           int64     `json:"staff_id"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Appointments   []Appointment   `json:"appointments,omitempty"`
	MedicalRecords []MedicalRecord `json:"medical_records,omitempty"`
}

func (s Staff) Bare() Staff {
	s.Appointments, s.MedicalRecords = nil, nil
	return s
}

// Service es un ítem del catálogo de la clínica.
type Service struct {
	ID          int64     `json:"service_id"`
	Name        string    `json:"service_name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Appointment struct {
	ID        int64             `json:"appointment_id"`
	PetID     int64             `json:"pet_id"`
	ServiceID int64             `json:"service_id"`
	StaffID   int64             `json:"staff_id"`
	OwnerID   *int64            `json:"owner_id"`
	Date      time.Time         `json:"appointment_date"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Pet           *Pet           `json:"pet,omitempty"`
	Service       *Service       `json:"service,omitempty"`
	Staff         *Staff         `json:"staff,omitempty"`
	Owner         *PetOwner      `json:"owner,omitempty"`
	MedicalRecord *MedicalRecord `json:"medical_record,omitempty"`
	Invoice       *Invoice       `json:"invoice,omitempty"`
}

func (a Appointment) Bare() Appointment {
	a.Pet, a.Service, a.Staff, a.Owner = nil, nil, nil, nil
	a.MedicalRecord, a.Invoice = nil, nil
	return a
}

func (a Appointment) FK(column string) *int64 {
	switch column {
	case "pet_id":
		return &a.PetID
	case "service_id":
		return &a.ServiceID
	case "staff_id":
		return &a.StaffID
	case "owner_id":
		return a.OwnerID
	}
	return nil
}

// MedicalRecord no tiene updated_at: se corrige con PATCH pero no se versiona.
type MedicalRecord struct {
	ID            int64     `json:"record_id"`
	AppointmentID int64     `json:"appointment_id"`
	PetID         *int64    `json:"pet_id"`
	StaffID       *int64    `json:"staff_id"`
	Diagnosis     string    `json:"diagnosis"`
	Treatment     string    `json:"treatment"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"created_at"`

	Appointment *Appointment `json:"appointment,omitempty"`
	Pet         *Pet         `json:"pet,omitempty"`
	Staff       *Staff       `json:"staff,omitempty"`
}

func (m MedicalRecord) Bare() MedicalRecord {
	m.Appointment, m.Pet, m.Staff = nil, nil, nil
	return m
}

func (m MedicalRecord) FK(column string) *int64 {
	switch column {
	case "appointment_id":
		return &m.AppointmentID
	case "pet_id":
		return m.PetID
	case "staff_id":
		return m.StaffID
	}
	return nil
}

// Invoice: total_amount lo define quien factura, no se recalcula.
type Invoice struct {
	ID             int64         `json:"invoice_id"`
	AppointmentID  int64         `json:"appointment_id"`
	OwnerID        *int64        `json:"owner_id"`
	BaseAmount     float64       `json:"base_amount"`
	AdditionalCost float64       `json:"additional_cost"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	PaymentDate    *Date         `json:"payment_date" swaggertype:"string" format:"date"`
	IssuedBy       string        `json:"issued_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Appointment *Appointment `json:"appointment,omitempty"`
	Owner       *PetOwner    `json:"owner,omitempty"`
}

func (i Invoice) Bare() Invoice {
	i.Appointment, i.Owner = nil, nil
	return i
}

func (i Invoice) FK(column string) *int64 {
	switch column {
	case "appointment_id":
		return &i.AppointmentID
	case "owner_id":
		return i.OwnerID
	}
	return nil
}
