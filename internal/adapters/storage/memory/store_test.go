package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pet-clinic/internal/domain/clinic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrud_IDsAreSequentialAndNotReused(t *testing.T) {
	s := NewStore()
	repo := NewServiceRepo(s)
	ctx := context.Background()

	a := clinic.Service{Name: "A"}
	b := clinic.Service{Name: "B"}
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	c := clinic.Service{Name: "C"}
	require.NoError(t, repo.Create(ctx, &c))
	assert.Equal(t, []int64{1, 2, 3}, []int64{a.ID, b.ID, c.ID})

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "C", list[1].Name)
}

func TestCrud_MissingIDs(t *testing.T) {
	repo := NewPetRepo(NewStore())
	ctx := context.Background()

	var nf *clinic.NotFoundError
	_, err := repo.Get(ctx, 5)
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, repo.Update(ctx, &clinic.Pet{ID: 5}), &nf)
	assert.ErrorAs(t, repo.Delete(ctx, 5), &nf)
}

func TestCrud_StoresBareRowsAndPopulatesOnRead(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	owner := clinic.PetOwner{FullName: "Jane", Email: "jane@example.com"}
	require.NoError(t, NewOwnerRepo(s).Create(ctx, &owner))

	// la relación que venga en el valor no se persiste
	pet := clinic.Pet{OwnerID: owner.ID, Name: "Rex", Owner: &clinic.PetOwner{FullName: "stale"}}
	require.NoError(t, NewPetRepo(s).Create(ctx, &pet))

	got, err := NewPetRepo(s).Get(ctx, pet.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "Jane", got.Owner.FullName)

	o, err := NewOwnerRepo(s).Get(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, o.Pets, 1)
	assert.Nil(t, o.Pets[0].Owner)
}

func TestOwnerRepo_FindByEmail(t *testing.T) {
	s := NewStore()
	repo := NewOwnerRepo(s)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &clinic.PetOwner{Email: "Jane@Example.com", PasswordHash: "h"}))

	o, ok, err := repo.FindByEmail(ctx, "jane@example.com ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "h", o.PasswordHash)

	_, ok, err = repo.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

// seedAppointment deja owner, staff, service, pet y una cita que los referencia.
func seedAppointment(t *testing.T, s *Store) clinic.Appointment {
	t.Helper()
	ctx := context.Background()

	owner := clinic.PetOwner{FullName: "Jane", Email: "jane@example.com"}
	require.NoError(t, NewOwnerRepo(s).Create(ctx, &owner))
	vet := clinic.Staff{FullName: "Dr. Who", Email: "vet@example.com"}
	require.NoError(t, NewStaffRepo(s).Create(ctx, &vet))
	svc := clinic.Service{Name: "Checkup"}
	require.NoError(t, NewServiceRepo(s).Create(ctx, &svc))
	pet := clinic.Pet{OwnerID: owner.ID, Name: "Rex"}
	require.NoError(t, NewPetRepo(s).Create(ctx, &pet))

	appt := clinic.Appointment{PetID: pet.ID, ServiceID: svc.ID, StaffID: vet.ID, OwnerID: &owner.ID}
	require.NoError(t, NewAppointmentRepo(s).Create(ctx, &appt))
	return appt
}

func TestStore_ReferencingAndDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	appt := seedAppointment(t, s)
	rec := clinic.MedicalRecord{AppointmentID: appt.ID}
	require.NoError(t, NewMedicalRecordRepo(s).Create(ctx, &rec))

	rel := clinic.Relation{Child: clinic.EntityMedicalRecord, Column: "appointment_id", Parent: clinic.EntityAppointment}
	ids, err := s.Referencing(ctx, rel, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{rec.ID}, ids)

	a, err := NewAppointmentRepo(s).Get(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, a.MedicalRecord)
	assert.Nil(t, a.Invoice)

	require.NoError(t, s.Delete(ctx, clinic.EntityMedicalRecord, rec.ID))
	ok, err := s.Exists(ctx, clinic.EntityMedicalRecord, rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCrud_RejectsDanglingForeignKeys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := NewPetRepo(s).Create(ctx, &clinic.Pet{OwnerID: 9, Name: "Rex"})
	var nf *clinic.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Pet Owner with ID 9 not found", nf.Error())

	appt := seedAppointment(t, s)
	staffID := int64(42)
	err = NewMedicalRecordRepo(s).Create(ctx, &clinic.MedicalRecord{AppointmentID: appt.ID, StaffID: &staffID})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, clinic.EntityStaff, nf.Entity)
}

func TestCrud_EmailUniqueIgnoringCase(t *testing.T) {
	s := NewStore()
	repo := NewStaffRepo(s)
	ctx := context.Background()

	a := clinic.Staff{Email: "vet@example.com"}
	b := clinic.Staff{Email: "other@example.com"}
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))

	var cf *clinic.ConflictError
	assert.ErrorAs(t, repo.Create(ctx, &clinic.Staff{Email: "VET@example.com"}), &cf)

	// update hacia un email tomado falla; el propio con otras mayúsculas no
	b.Email = "Vet@Example.com"
	assert.ErrorAs(t, repo.Update(ctx, &b), &cf)
	a.Email = "VET@EXAMPLE.COM"
	assert.NoError(t, repo.Update(ctx, &a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCrud_ConcurrentCreatesKeepConstraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	appt := seedAppointment(t, s)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	count := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		var cf *clinic.ConflictError
		switch {
		case err == nil:
			created++
		case errors.As(err, &cf):
			conflicts++
		}
	}

	owners := NewOwnerRepo(s)
	invoices := NewInvoiceRepo(s)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			count(owners.Create(ctx, &clinic.PetOwner{FullName: "Twin", Email: "twin@example.com"}))
		}()
		go func() {
			defer wg.Done()
			count(invoices.Create(ctx, &clinic.Invoice{AppointmentID: appt.ID, TotalAmount: 10}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, created)
	assert.Equal(t, 2*n-2, conflicts)

	invs, err := invoices.List(ctx)
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}

func TestCrud_DeleteFollowsRelations(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	appt := seedAppointment(t, s)

	rec := clinic.MedicalRecord{AppointmentID: appt.ID}
	require.NoError(t, NewMedicalRecordRepo(s).Create(ctx, &rec))

	// el pet sigue referenciado por la cita
	var cf *clinic.ConflictError
	assert.ErrorAs(t, NewPetRepo(s).Delete(ctx, appt.PetID), &cf)

	require.NoError(t, NewAppointmentRepo(s).Delete(ctx, appt.ID))
	ok, err := s.Exists(ctx, clinic.EntityMedicalRecord, rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
