// Package dashboard calcula en el servidor los agregados que antes armaban
// los dashboards del navegador con N requests.
package dashboard

import (
	"context"
	"sort"
	"time"

	"pet-clinic/internal/domain/clinic"
)

const chartDays = 30

type (
	OwnerSource interface {
		FindAll(ctx context.Context) ([]clinic.PetOwner, error)
		FindOne(ctx context.Context, id int64) (clinic.PetOwner, error)
	}
	PetSource interface {
		FindAll(ctx context.Context) ([]clinic.Pet, error)
	}
	AppointmentSource interface {
		FindAll(ctx context.Context) ([]clinic.Appointment, error)
	}
	RecordSource interface {
		FindAll(ctx context.Context) ([]clinic.MedicalRecord, error)
	}
	InvoiceSource interface {
		FindAll(ctx context.Context) ([]clinic.Invoice, error)
	}
)

type Sources struct {
	Owners       OwnerSource
	Pets         PetSource
	Appointments AppointmentSource
	Records      RecordSource
	Invoices     InvoiceSource
}

type Service struct {
	src Sources
}

func NewService(src Sources) *Service {
	return &Service{src: src}
}

// DayStatus es un punto del gráfico de citas por día.
type DayStatus struct {
	Date      string `json:"date"`
	Pending   int    `json:"Pending"`
	Completed int    `json:"Completed"`
	Canceled  int    `json:"Canceled"`
}

type Summary struct {
	TotalOwners         int         `json:"total_owners"`
	TotalPets           int         `json:"total_pets"`
	TotalAppointments   int         `json:"total_appointments"`
	TotalInvoices       int         `json:"total_invoices"`
	PendingAppointments int         `json:"pending_appointments"`
	UnpaidInvoices      int         `json:"unpaid_invoices"`
	AppointmentsByDay   []DayStatus `json:"appointments_by_day"`
}

// Summary es la vista del staff sobre toda la clínica.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	owners, err := s.src.Owners.FindAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	pets, err := s.src.Pets.FindAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	appts, err := s.src.Appointments.FindAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	invs, err := s.src.Invoices.FindAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		TotalOwners:       len(owners),
		TotalPets:         len(pets),
		TotalAppointments: len(appts),
		TotalInvoices:     len(invs),
		AppointmentsByDay: statusByDay(appts, chartDays),
	}
	for _, a := range appts {
		if a.Status == clinic.AppointmentPending {
			out.PendingAppointments++
		}
	}
	for _, i := range invs {
		if i.PaymentStatus == clinic.PaymentPending {
			out.UnpaidInvoices++
		}
	}
	return out, nil
}

type Overview struct {
	Owner                clinic.PetOwner        `json:"owner"`
	Pets                 []clinic.Pet           `json:"pets"`
	Appointments         []clinic.Appointment   `json:"appointments"`
	UpcomingAppointments int                    `json:"upcoming_appointments"`
	MedicalRecords       []clinic.MedicalRecord `json:"medical_records"`
	Invoices             []clinic.Invoice       `json:"invoices"`
	UnpaidInvoices       int                    `json:"unpaid_invoices"`
	UnpaidTotal          float64                `json:"unpaid_total"`
}

// Overview es la vista del dueño: sólo lo suyo.
func (s *Service) Overview(ctx context.Context, ownerID int64) (Overview, error) {
	owner, err := s.src.Owners.FindOne(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}
	pets, err := s.src.Pets.FindAll(ctx)
	if err != nil {
		return Overview{}, err
	}
	appts, err := s.src.Appointments.FindAll(ctx)
	if err != nil {
		return Overview{}, err
	}
	records, err := s.src.Records.FindAll(ctx)
	if err != nil {
		return Overview{}, err
	}
	invs, err := s.src.Invoices.FindAll(ctx)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{
		Owner:          owner.Bare(),
		Pets:           make([]clinic.Pet, 0),
		Appointments:   make([]clinic.Appointment, 0),
		MedicalRecords: make([]clinic.MedicalRecord, 0),
		Invoices:       make([]clinic.Invoice, 0),
	}

	myPets := map[int64]bool{}
	for _, p := range pets {
		if p.OwnerID == ownerID {
			myPets[p.ID] = true
			out.Pets = append(out.Pets, p)
		}
	}
	for _, a := range appts {
		if a.OwnerID != nil && *a.OwnerID == ownerID {
			out.Appointments = append(out.Appointments, a)
			if a.Status == clinic.AppointmentPending {
				out.UpcomingAppointments++
			}
		}
	}
	for _, m := range records {
		if m.PetID != nil && myPets[*m.PetID] {
			out.MedicalRecords = append(out.MedicalRecords, m)
		}
	}
	for _, i := range invs {
		if i.OwnerID != nil && *i.OwnerID == ownerID {
			out.Invoices = append(out.Invoices, i)
			if i.PaymentStatus == clinic.PaymentPending {
				out.UnpaidInvoices++
				out.UnpaidTotal += i.TotalAmount
			}
		}
	}
	out.UnpaidTotal = clinic.Round2(out.UnpaidTotal)
	return out, nil
}

// statusByDay agrupa por fecha (UTC) de la cita y se queda con los últimos
// `days` días distintos, en orden ascendente.
func statusByDay(appts []clinic.Appointment, days int) []DayStatus {
	byDay := map[string]*DayStatus{}
	for _, a := range appts {
		key := a.Date.UTC().Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			d = &DayStatus{Date: key}
			byDay[key] = d
		}
		switch a.Status {
		case clinic.AppointmentPending:
			d.Pending++
		case clinic.AppointmentCompleted:
			d.Completed++
		case clinic.AppointmentCanceled:
			d.Canceled++
		}
	}

	out := make([]DayStatus, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > days {
		out = out[len(out)-days:]
	}
	return out
}
