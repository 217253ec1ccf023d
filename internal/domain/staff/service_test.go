package staff_test

import (
	"context"
	"testing"

	mem "pet-clinic/internal/adapters/storage/memory"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService() *staff.Service {
	s := mem.NewStore()
	return staff.NewService(mem.NewStaffRepo(s), clinic.NewIntegrity(s), nil, bcrypt.MinCost)
}

func vet() staff.CreateInput {
	return staff.CreateInput{
		FullName: " Dr. Who ",
		Role:     "Vet",
		Phone:    "555-0101",
		Email:    "who@example.com",
		Password: "secret1",
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, vet())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Who", first.FullName)

	in := vet()
	in.Email = "WHO@example.com"
	_, err = svc.Create(ctx, in)

	var cf *clinic.ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Equal(t, "Email WHO@example.com is already registered", cf.Error())

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, vet())
	require.NoError(t, err)
	oldHash := m.PasswordHash

	got, err := svc.Update(ctx, m.ID, staff.UpdateInput{Password: ptr("another1")})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, got.PasswordHash)

	stored, err := svc.FindOne(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, clinic.CheckPassword(stored.PasswordHash, "another1"))
	assert.False(t, clinic.CheckPassword(stored.PasswordHash, "secret1"))
}

func TestUpdate_BlankPasswordKeepsHash(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, vet())
	require.NoError(t, err)

	got, err := svc.Update(ctx, m.ID, staff.UpdateInput{Role: ptr("Receptionist"), Password: ptr("   ")})
	require.NoError(t, err)
	assert.Equal(t, m.PasswordHash, got.PasswordHash)
	assert.Equal(t, "Receptionist", got.Role)
	assert.Equal(t, "Dr. Who", got.FullName)
	assert.Equal(t, "who@example.com", got.Email)
	assert.True(t, clinic.CheckPassword(got.PasswordHash, "secret1"))
}

func TestUpdate_EmailTakenByOtherStaff(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, vet())
	require.NoError(t, err)
	other := vet()
	other.Email = "desk@example.com"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, staff.UpdateInput{Email: ptr("Desk@Example.com")})
	var cf *clinic.ConflictError
	require.ErrorAs(t, err, &cf)

	stored, err := svc.FindOne(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "who@example.com", stored.Email)
}

func TestRemove_RestrictedByAppointments(t *testing.T) {
	s := mem.NewStore()
	ctx := context.Background()
	svc := staff.NewService(mem.NewStaffRepo(s), clinic.NewIntegrity(s), nil, bcrypt.MinCost)

	m, err := svc.Create(ctx, vet())
	require.NoError(t, err)
	owner := clinic.PetOwner{FullName: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, mem.NewOwnerRepo(s).Create(ctx, &owner))
	pet := clinic.Pet{OwnerID: owner.ID, Name: "Rex", Species: "Dog", Gender: clinic.GenderMale}
	require.NoError(t, mem.NewPetRepo(s).Create(ctx, &pet))
	service := clinic.Service{Name: "Checkup", Price: 30}
	require.NoError(t, mem.NewServiceRepo(s).Create(ctx, &service))
	appt := clinic.Appointment{PetID: pet.ID, ServiceID: service.ID, StaffID: m.ID, Status: clinic.AppointmentPending}
	require.NoError(t, mem.NewAppointmentRepo(s).Create(ctx, &appt))

	var cf *clinic.ConflictError
	require.ErrorAs(t, svc.Remove(ctx, m.ID), &cf)

	_, err = svc.FindOne(ctx, m.ID)
	assert.NoError(t, err)
}
