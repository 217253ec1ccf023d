package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pet-clinic/internal/domain/clinic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	owners []clinic.PetOwner
	pets   []clinic.Pet
	appts  []clinic.Appointment
	recs   []clinic.MedicalRecord
	invs   []clinic.Invoice
}

type ownersSrc struct{ f *fakeSource }

func (s ownersSrc) FindAll(context.Context) ([]clinic.PetOwner, error) { return s.f.owners, nil }
func (s ownersSrc) FindOne(_ context.Context, id int64) (clinic.PetOwner, error) {
	for _, o := range s.f.owners {
		if o.ID == id {
			return o, nil
		}
	}
	return clinic.PetOwner{}, clinic.NotFound(clinic.EntityPetOwner, id)
}

type petsSrc struct{ f *fakeSource }

func (s petsSrc) FindAll(context.Context) ([]clinic.Pet, error) { return s.f.pets, nil }

type apptsSrc struct{ f *fakeSource }

func (s apptsSrc) FindAll(context.Context) ([]clinic.Appointment, error) { return s.f.appts, nil }

type recsSrc struct{ f *fakeSource }

func (s recsSrc) FindAll(context.Context) ([]clinic.MedicalRecord, error) { return s.f.recs, nil }

type invsSrc struct{ f *fakeSource }

func (s invsSrc) FindAll(context.Context) ([]clinic.Invoice, error) { return s.f.invs, nil }

func newTestService(f *fakeSource) *Service {
	return NewService(Sources{
		Owners:       ownersSrc{f},
		Pets:         petsSrc{f},
		Appointments: apptsSrc{f},
		Records:      recsSrc{f},
		Invoices:     invsSrc{f},
	})
}

func ptr(v int64) *int64 { return &v }

func day(d int, hour int) time.Time {
	return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
}

func fixture() *fakeSource {
	return &fakeSource{
		owners: []clinic.PetOwner{{ID: 1, FullName: "Ana"}, {ID: 2, FullName: "Beto"}},
		pets: []clinic.Pet{
			{ID: 10, OwnerID: 1, Name: "Rex"},
			{ID: 11, OwnerID: 2, Name: "Mishi"},
		},
		appts: []clinic.Appointment{
			{ID: 100, PetID: 10, OwnerID: ptr(1), Date: day(2, 9), Status: clinic.AppointmentCompleted},
			{ID: 101, PetID: 10, OwnerID: ptr(1), Date: day(2, 15), Status: clinic.AppointmentPending},
			{ID: 102, PetID: 11, OwnerID: ptr(2), Date: day(1, 10), Status: clinic.AppointmentCanceled},
			{ID: 103, PetID: 11, Date: day(5, 10), Status: clinic.AppointmentPending},
		},
		recs: []clinic.MedicalRecord{
			{ID: 1000, AppointmentID: 100, PetID: ptr(10)},
			{ID: 1001, AppointmentID: 102, PetID: ptr(11)},
		},
		invs: []clinic.Invoice{
			{ID: 1, AppointmentID: 100, OwnerID: ptr(1), TotalAmount: 10.1, PaymentStatus: clinic.PaymentPending},
			{ID: 2, AppointmentID: 101, OwnerID: ptr(1), TotalAmount: 20.2, PaymentStatus: clinic.PaymentPending},
			{ID: 3, AppointmentID: 102, OwnerID: ptr(2), TotalAmount: 5, PaymentStatus: clinic.PaymentPaid},
		},
	}
}

func TestSummary(t *testing.T) {
	got, err := newTestService(fixture()).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalOwners)
	assert.Equal(t, 2, got.TotalPets)
	assert.Equal(t, 4, got.TotalAppointments)
	assert.Equal(t, 3, got.TotalInvoices)
	assert.Equal(t, 2, got.PendingAppointments)
	assert.Equal(t, 2, got.UnpaidInvoices)
	assert.Equal(t, []DayStatus{
		{Date: "2025-03-01", Canceled: 1},
		{Date: "2025-03-02", Pending: 1, Completed: 1},
		{Date: "2025-03-05", Pending: 1},
	}, got.AppointmentsByDay)
}

func TestSummary_EmptyClinic(t *testing.T) {
	got, err := newTestService(&fakeSource{}).Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalOwners)
	assert.NotNil(t, got.AppointmentsByDay)
	assert.Empty(t, got.AppointmentsByDay)
}

func TestStatusByDay_KeepsLastDistinctDays(t *testing.T) {
	var appts []clinic.Appointment
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		appts = append(appts, clinic.Appointment{Date: base.AddDate(0, 0, i), Status: clinic.AppointmentPending})
	}

	got := statusByDay(appts, chartDays)
	require.Len(t, got, chartDays)
	assert.Equal(t, base.AddDate(0, 0, 10).Format(time.DateOnly), got[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 39).Format(time.DateOnly), got[len(got)-1].Date)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Date, got[i].Date, fmt.Sprintf("index %d", i))
	}
}

func TestOverview_OnlyOwnData(t *testing.T) {
	got, err := newTestService(fixture()).Overview(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Ana", got.Owner.FullName)
	require.Len(t, got.Pets, 1)
	assert.Equal(t, int64(10), got.Pets[0].ID)
	assert.Len(t, got.Appointments, 2)
	assert.Equal(t, 1, got.UpcomingAppointments)
	require.Len(t, got.MedicalRecords, 1)
	assert.Equal(t, int64(1000), got.MedicalRecords[0].ID)
	assert.Len(t, got.Invoices, 2)
	assert.Equal(t, 2, got.UnpaidInvoices)
	assert.Equal(t, 30.3, got.UnpaidTotal)
}

func TestOverview_OwnerWithoutData(t *testing.T) {
	f := fixture()
	f.owners = append(f.owners, clinic.PetOwner{ID: 3})

	got, err := newTestService(f).Overview(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, got.Pets)
	assert.Empty(t, got.Pets)
	assert.Empty(t, got.Invoices)
	assert.Zero(t, got.UnpaidTotal)
}

func TestOverview_UnknownOwner(t *testing.T) {
	_, err := newTestService(fixture()).Overview(context.Background(), 99)
	var nf *clinic.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
