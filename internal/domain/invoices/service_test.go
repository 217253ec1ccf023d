package invoices_test

import (
	"context"
	"testing"
	"time"

	mem "pet-clinic/internal/adapters/storage/memory"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/invoices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc     *invoices.Service
	ownerID int64
	apptIDs []int64
}

// setup deja una clínica con dos citas sin facturar.
func setup(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	s := mem.NewStore()

	owner := clinic.PetOwner{FullName: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, mem.NewOwnerRepo(s).Create(ctx, &owner))
	vet := clinic.Staff{FullName: "Dr. Who", Role: "Vet", Email: "vet@example.com"}
	require.NoError(t, mem.NewStaffRepo(s).Create(ctx, &vet))
	service := clinic.Service{Name: "Checkup", Price: 30}
	require.NoError(t, mem.NewServiceRepo(s).Create(ctx, &service))
	pet := clinic.Pet{OwnerID: owner.ID, Name: "Rex", Species: "Dog", Gender: clinic.GenderMale}
	require.NoError(t, mem.NewPetRepo(s).Create(ctx, &pet))

	e := env{ownerID: owner.ID}
	for i := 0; i < 2; i++ {
		a := clinic.Appointment{
			PetID: pet.ID, ServiceID: service.ID, StaffID: vet.ID,
			Date:   time.Date(2025, 5, 1+i, 10, 0, 0, 0, time.UTC),
			Status: clinic.AppointmentCompleted,
		}
		require.NoError(t, mem.NewAppointmentRepo(s).Create(ctx, &a))
		e.apptIDs = append(e.apptIDs, a.ID)
	}

	e.svc = invoices.NewService(mem.NewInvoiceRepo(s), clinic.NewIntegrity(s), nil)
	return e
}

func ptr[T any](v T) *T { return &v }

func (e env) input(apptID int64) invoices.CreateInput {
	return invoices.CreateInput{
		AppointmentID: ptr(apptID),
		OwnerID:       ptr(e.ownerID),
		BaseAmount:    ptr(30.0),
		TotalAmount:   ptr(30.0),
		PaymentMethod: " Cash ",
		IssuedBy:      "Front desk",
	}
}

func TestCreate_Defaults(t *testing.T) {
	e := setup(t)

	inv, err := e.svc.Create(context.Background(), e.input(e.apptIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, clinic.PaymentPending, inv.PaymentStatus)
	assert.Zero(t, inv.AdditionalCost)
	assert.Equal(t, "Cash", inv.PaymentMethod)
	assert.Nil(t, inv.PaymentDate)
}

func TestCreate_OnePerAppointment(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Create(ctx, e.input(e.apptIDs[0]))
	require.NoError(t, err)

	_, err = e.svc.Create(ctx, e.input(e.apptIDs[0]))
	var cf *clinic.ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Contains(t, cf.Message, "Appointment with ID 1 already has")

	all, err := e.svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_UnknownOwner(t *testing.T) {
	e := setup(t)
	in := e.input(e.apptIDs[0])
	in.OwnerID = ptr(int64(77))

	_, err := e.svc.Create(context.Background(), in)
	var nf *clinic.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, clinic.EntityPetOwner, nf.Entity)
}

func TestCreate_Validation(t *testing.T) {
	e := setup(t)
	in := e.input(e.apptIDs[0])
	in.TotalAmount = ptr(10.125)
	in.PaymentMethod = "  "
	in.PaymentStatus = "Refunded"

	_, err := e.svc.Create(context.Background(), in)
	var verr *clinic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must have at most 2 decimal places", verr.Fields["total_amount"])
	assert.Equal(t, "is required", verr.Fields["payment_method"])
	assert.Equal(t, "must be one of: Pending, Paid, Canceled", verr.Fields["payment_status"])
}

func TestUpdate_PayAndClearDate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	inv, err := e.svc.Create(ctx, e.input(e.apptIDs[0]))
	require.NoError(t, err)

	paid := clinic.PaymentPaid
	got, err := e.svc.Update(ctx, inv.ID, invoices.UpdateInput{
		PaymentStatus: &paid,
		PaymentDate:   clinic.Some(clinic.NewDate(2025, time.May, 2)),
	})
	require.NoError(t, err)
	assert.Equal(t, clinic.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, "2025-05-02", got.PaymentDate.String())
	assert.Equal(t, 30.0, got.TotalAmount)

	got, err = e.svc.Update(ctx, inv.ID, invoices.UpdateInput{PaymentDate: clinic.Null[clinic.Date]()})
	require.NoError(t, err)
	assert.Nil(t, got.PaymentDate)
	assert.Equal(t, clinic.PaymentPaid, got.PaymentStatus)
}

func TestUpdate_MoveToInvoicedAppointment(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.svc.Create(ctx, e.input(e.apptIDs[0]))
	require.NoError(t, err)
	second, err := e.svc.Create(ctx, e.input(e.apptIDs[1]))
	require.NoError(t, err)

	_, err = e.svc.Update(ctx, second.ID, invoices.UpdateInput{AppointmentID: ptr(e.apptIDs[0])})
	var cf *clinic.ConflictError
	assert.ErrorAs(t, err, &cf)

	// reasignar a la misma cita no es conflicto
	_, err = e.svc.Update(ctx, second.ID, invoices.UpdateInput{AppointmentID: ptr(e.apptIDs[1])})
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	inv, err := e.svc.Create(ctx, e.input(e.apptIDs[0]))
	require.NoError(t, err)

	require.NoError(t, e.svc.Remove(ctx, inv.ID))
	_, err = e.svc.FindOne(ctx, inv.ID)
	var nf *clinic.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, e.svc.Remove(ctx, inv.ID), &nf)
}
