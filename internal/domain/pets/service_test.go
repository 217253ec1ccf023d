package pets_test

import (
	"context"
	"testing"

	mem "pet-clinic/internal/adapters/storage/memory"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// setup deja un owner y devuelve el service de mascotas sobre el mismo store.
func setup(t *testing.T) (*pets.Service, int64) {
	t.Helper()
	s := mem.NewStore()
	owner := clinic.PetOwner{FullName: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, mem.NewOwnerRepo(s).Create(context.Background(), &owner))
	return pets.NewService(mem.NewPetRepo(s), clinic.NewIntegrity(s), nil), owner.ID
}

func rex(ownerID int64) pets.CreateInput {
	dob := clinic.NewDate(2020, 4, 2)
	return pets.CreateInput{
		OwnerID: ptr(ownerID),
		Name:    " Rex ",
		Species: "Dog",
		Gender:  clinic.GenderMale,
		DOB:     &dob,
		Weight:  ptr(12.5),
	}
}

func TestCreate_TrimsName(t *testing.T) {
	svc, ownerID := setup(t)

	p, err := svc.Create(context.Background(), rex(ownerID))
	require.NoError(t, err)
	assert.Equal(t, "Rex", p.Name)
	assert.Equal(t, 12.5, p.Weight)
	assert.Equal(t, "2020-04-02", p.DOB.String())
}

func TestCreate_UnknownOwnerIsNotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(context.Background(), rex(42))
	var nf *clinic.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, clinic.EntityPetOwner, nf.Entity)
}

func TestUpdate_PartialKeepsOmittedFields(t *testing.T) {
	svc, ownerID := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, rex(ownerID))
	require.NoError(t, err)

	got, err := svc.Update(ctx, p.ID, pets.UpdateInput{Weight: ptr(13.0)})
	require.NoError(t, err)
	assert.Equal(t, 13.0, got.Weight)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "Dog", got.Species)
	assert.Equal(t, clinic.GenderMale, got.Gender)
	assert.Equal(t, "2020-04-02", got.DOB.String())
	assert.Equal(t, ownerID, got.OwnerID)
}

func TestUpdate_RejectsBadInput(t *testing.T) {
	svc, ownerID := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, rex(ownerID))
	require.NoError(t, err)

	var verr *clinic.ValidationError
	_, err = svc.Update(ctx, p.ID, pets.UpdateInput{Name: ptr("  "), Weight: ptr(-1.0)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "weight")

	var nf *clinic.NotFoundError
	_, err = svc.Update(ctx, p.ID, pets.UpdateInput{OwnerID: ptr(int64(99))})
	require.ErrorAs(t, err, &nf)

	stored, err := svc.FindOne(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, stored.OwnerID)
}
