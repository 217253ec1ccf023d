package clinic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRefs guarda filas como entidad -> id -> FKs.
type fakeRefs struct {
	rows    map[Entity]map[int64]Refs
	deleted []string
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{rows: map[Entity]map[int64]Refs{}}
}

func (f *fakeRefs) add(e Entity, id int64, refs Refs) {
	if f.rows[e] == nil {
		f.rows[e] = map[int64]Refs{}
	}
	f.rows[e][id] = refs
}

func (f *fakeRefs) Exists(ctx context.Context, e Entity, id int64) (bool, error) {
	_, ok := f.rows[e][id]
	return ok, nil
}

func (f *fakeRefs) Referencing(ctx context.Context, rel Relation, parentID int64) ([]int64, error) {
	var out []int64
	for id, refs := range f.rows[rel.Child] {
		if v, ok := refs[rel.Column]; ok && v == parentID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeRefs) Delete(ctx context.Context, e Entity, id int64) error {
	delete(f.rows[e], id)
	f.deleted = append(f.deleted, string(e))
	return nil
}

func TestCheckRefs(t *testing.T) {
	f := newFakeRefs()
	f.add(EntityPet, 1, Refs{})
	f.add(EntityService, 1, Refs{})
	g := NewIntegrity(f)
	ctx := context.Background()

	err := g.CheckRefs(ctx, EntityAppointment, Refs{"pet_id": 1, "service_id": 1, "staff_id": 3})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Staff with ID 3 not found", nf.Error())

	// las FKs nulas no se chequean
	f.add(EntityStaff, 3, Refs{})
	refs := Refs{"pet_id": 1, "service_id": 1, "staff_id": 3}.With("owner_id", nil)
	assert.NoError(t, g.CheckRefs(ctx, EntityAppointment, refs))
}

func TestCheckOneToOne(t *testing.T) {
	f := newFakeRefs()
	f.add(EntityMedicalRecord, 7, Refs{"appointment_id": 1})
	g := NewIntegrity(f)
	ctx := context.Background()

	err := g.CheckOneToOne(ctx, EntityMedicalRecord, 0, Refs{"appointment_id": 1})
	var cf *ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Equal(t, "Appointment with ID 1 already has a Medical Record", cf.Message)

	// el mismo registro puede quedarse con su cita
	assert.NoError(t, g.CheckOneToOne(ctx, EntityMedicalRecord, 7, Refs{"appointment_id": 1}))
	// la FK a staff no es 1-1
	f.add(EntityMedicalRecord, 8, Refs{"appointment_id": 2, "staff_id": 4})
	assert.NoError(t, g.CheckOneToOne(ctx, EntityMedicalRecord, 0, Refs{"appointment_id": 3, "staff_id": 4}))
}

func TestBeforeDelete_RestrictWins(t *testing.T) {
	f := newFakeRefs()
	f.add(EntityAppointment, 1, Refs{"pet_id": 1})
	f.add(EntityMedicalRecord, 1, Refs{"appointment_id": 1})
	f.add(EntityInvoice, 1, Refs{"appointment_id": 1})
	g := NewIntegrity(f)

	err := g.BeforeDelete(context.Background(), EntityAppointment, 1)
	var cf *ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Contains(t, cf.Message, "Invoice")
	// nada se borró antes de detectar el restrict
	assert.Empty(t, f.deleted)
}

func TestBeforeDelete_Cascades(t *testing.T) {
	f := newFakeRefs()
	f.add(EntityAppointment, 1, Refs{"pet_id": 1})
	f.add(EntityMedicalRecord, 1, Refs{"appointment_id": 1})
	f.add(EntityMedicalRecord, 2, Refs{"appointment_id": 9})
	g := NewIntegrity(f)

	require.NoError(t, g.BeforeDelete(context.Background(), EntityAppointment, 1))
	assert.Equal(t, []string{"MedicalRecord"}, f.deleted)
	_, stillThere := f.rows[EntityMedicalRecord][2]
	assert.True(t, stillThere)
}

func TestBeforeDelete_RestrictThroughCascadeChild(t *testing.T) {
	f := newFakeRefs()
	g := &Integrity{store: f, relations: []Relation{
		{Child: EntityMedicalRecord, Column: "appointment_id", Parent: EntityAppointment, OnDelete: Cascade},
		{Child: EntityInvoice, Column: "record_id", Parent: EntityMedicalRecord, OnDelete: Restrict},
	}}
	f.add(EntityMedicalRecord, 1, Refs{"appointment_id": 1})
	f.add(EntityInvoice, 1, Refs{"record_id": 1})

	err := g.BeforeDelete(context.Background(), EntityAppointment, 1)
	var cf *ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Empty(t, f.deleted)
}
