package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	mem "pet-clinic/internal/adapters/storage/memory"
	"pet-clinic/internal/domain/catalog"
	"pet-clinic/internal/domain/clinic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService() *catalog.Service {
	s := mem.NewStore()
	return catalog.NewService(mem.NewServiceRepo(s), clinic.NewIntegrity(s), nil)
}

func checkup() catalog.CreateInput {
	return catalog.CreateInput{Name: " Checkup ", Description: ptr("Yearly checkup"), Price: ptr(30.0)}
}

func patch(t *testing.T, body string) catalog.UpdateInput {
	t.Helper()
	var in catalog.UpdateInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestUpdate_PartialKeepsOmittedFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	v, err := svc.Create(ctx, checkup())
	require.NoError(t, err)
	assert.Equal(t, "Checkup", v.Name)

	got, err := svc.Update(ctx, v.ID, patch(t, `{"price": 45.5}`))
	require.NoError(t, err)
	assert.Equal(t, 45.5, got.Price)
	assert.Equal(t, "Checkup", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Yearly checkup", *got.Description)
}

func TestUpdate_NullDescriptionClearsIt(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	v, err := svc.Create(ctx, checkup())
	require.NoError(t, err)

	got, err := svc.Update(ctx, v.ID, patch(t, `{"description": null}`))
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, 30.0, got.Price)

	stored, err := svc.FindOne(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Description)

	got, err = svc.Update(ctx, v.ID, patch(t, `{"description": "Full exam"}`))
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Full exam", *got.Description)
}

func TestCreateAndUpdate_PriceRules(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	free := checkup()
	free.Price = ptr(0.0)
	v, err := svc.Create(ctx, free)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Price)

	var verr *clinic.ValidationError
	_, err = svc.Update(ctx, v.ID, patch(t, `{"price": 10.999}`))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	_, err = svc.Update(ctx, v.ID, patch(t, `{"service_name": "   "}`))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "service_name")
}
