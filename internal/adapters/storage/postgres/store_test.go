package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "clinic.db")

	cfg := GormConfig(logger.Nop(), time.Second)
	cfg.DisableForeignKeyConstraintWhenMigrating = true
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(AllRows()...))
	return db
}

type fixture struct {
	owner   clinic.PetOwner
	staff   clinic.Staff
	service clinic.Service
	pet     clinic.Pet
	appt    clinic.Appointment
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	f := fixture{
		owner: clinic.PetOwner{FullName: "Jane Doe", Phone: "555-0100", Email: "Jane@Example.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now},
		staff: clinic.Staff{FullName: "Dr. Who", Role: "Vet", Phone: "555-0200", Email: "vet@example.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now},
	}
	desc := "yearly shots"
	f.service = clinic.Service{Name: "Vaccination", Description: &desc, Price: 45.5, CreatedAt: now, UpdatedAt: now}

	require.NoError(t, NewOwnerRepo(db).Create(ctx, &f.owner))
	require.NoError(t, NewStaffRepo(db).Create(ctx, &f.staff))
	require.NoError(t, NewServiceRepo(db).Create(ctx, &f.service))

	f.pet = clinic.Pet{OwnerID: f.owner.ID, Name: "Rex", Species: "Dog", Gender: clinic.GenderMale, DOB: clinic.NewDate(2020, 1, 2), Weight: 12.5, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewPetRepo(db).Create(ctx, &f.pet))

	f.appt = clinic.Appointment{PetID: f.pet.ID, ServiceID: f.service.ID, StaffID: f.staff.ID, OwnerID: &f.owner.ID, Date: now.Add(24 * time.Hour), Status: clinic.AppointmentPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewAppointmentRepo(db).Create(ctx, &f.appt))
	return f
}

func TestRepos_CreateAssignsIDsAndPopulatesRelations(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	ctx := context.Background()

	assert.Equal(t, int64(1), f.owner.ID)
	assert.Equal(t, int64(1), f.appt.ID)

	owner, err := NewOwnerRepo(db).Get(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, owner.Pets, 1)
	assert.Equal(t, "Rex", owner.Pets[0].Name)
	require.Len(t, owner.Appointments, 1)
	assert.Empty(t, owner.Invoices)

	pet, err := NewPetRepo(db).Get(ctx, f.pet.ID)
	require.NoError(t, err)
	require.NotNil(t, pet.Owner)
	assert.Equal(t, "Jane Doe", pet.Owner.FullName)
	assert.Equal(t, "2020-01-02", pet.DOB.String())

	appt, err := NewAppointmentRepo(db).Get(ctx, f.appt.ID)
	require.NoError(t, err)
	require.NotNil(t, appt.Pet)
	require.NotNil(t, appt.Service)
	require.NotNil(t, appt.Staff)
	require.NotNil(t, appt.Owner)
	assert.Nil(t, appt.MedicalRecord)
	assert.Equal(t, "Vaccination", appt.Service.Name)
	assert.Equal(t, f.appt.Date.Unix(), appt.Date.Unix())
}

func TestRepos_GetMissingIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewPetRepo(db).Get(context.Background(), 42)

	var nf *clinic.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Pet with ID 42 not found", err.Error())
}

func TestRepos_ListIsOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewServiceRepo(db)

	for _, name := range []string{"B", "A", "C"} {
		require.NoError(t, repo.Create(ctx, &clinic.Service{Name: name, Price: 1}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestRepos_UpdateWritesNulls(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	ctx := context.Background()
	repo := NewServiceRepo(db)

	f.service.Description = nil
	f.service.Price = 50
	require.NoError(t, repo.Update(ctx, &f.service))

	got, err := repo.Get(ctx, f.service.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, 50.0, got.Price)

	missing := clinic.Service{ID: 99, Name: "x", Price: 1}
	err = repo.Update(ctx, &missing)
	var nf *clinic.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRepos_DeleteMissingIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := NewInvoiceRepo(db).Delete(context.Background(), 7)

	var nf *clinic.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRepos_FindByEmailIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	ctx := context.Background()

	o, ok, err := NewOwnerRepo(db).FindByEmail(ctx, " jane@example.COM ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.owner.ID, o.ID)
	assert.Equal(t, "x", o.PasswordHash)

	_, ok, err = NewStaffRepo(db).FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepos_DuplicateKeyIsConflict(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	ctx := context.Background()

	dup := f.owner
	dup.ID = 0
	err := NewOwnerRepo(db).Create(ctx, &dup)
	var cf *clinic.ConflictError
	require.ErrorAs(t, err, &cf)
	assert.Equal(t, "Pet Owner violates a unique constraint", cf.Message)
	assert.Zero(t, dup.ID)

	now := f.appt.CreatedAt
	first := clinic.Invoice{AppointmentID: f.appt.ID, OwnerID: &f.owner.ID, BaseAmount: 45.5, TotalAmount: 45.5, PaymentStatus: clinic.PaymentPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewInvoiceRepo(db).Create(ctx, &first))
	second := first
	second.ID = 0
	require.ErrorAs(t, NewInvoiceRepo(db).Create(ctx, &second), &cf)

	var owners int64
	require.NoError(t, db.Model(&ownerRow{}).Count(&owners).Error)
	assert.Equal(t, int64(1), owners)
}

func TestStore_IntegrityCascadesRecordsAndRestrictsInvoices(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	ctx := context.Background()
	store := NewStore(db)
	integrity := clinic.NewIntegrity(store)

	rec := clinic.MedicalRecord{AppointmentID: f.appt.ID, PetID: &f.pet.ID, Diagnosis: "ok", Treatment: "none", CreatedAt: time.Now().UTC()}
	require.NoError(t, NewMedicalRecordRepo(db).Create(ctx, &rec))

	ok, err := store.Exists(ctx, clinic.EntityMedicalRecord, rec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := store.Referencing(ctx, clinic.Relation{Child: clinic.EntityMedicalRecord, Column: "appointment_id"}, f.appt.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{rec.ID}, ids)

	// el pet tiene cita y registro: restrict
	err = integrity.BeforeDelete(ctx, clinic.EntityPet, f.pet.ID)
	var cf *clinic.ConflictError
	require.True(t, errors.As(err, &cf))

	inv := clinic.Invoice{AppointmentID: f.appt.ID, BaseAmount: 10, TotalAmount: 10, PaymentMethod: "Cash", PaymentStatus: clinic.PaymentPending, IssuedBy: "desk"}
	require.NoError(t, NewInvoiceRepo(db).Create(ctx, &inv))

	err = integrity.BeforeDelete(ctx, clinic.EntityAppointment, f.appt.ID)
	require.True(t, errors.As(err, &cf))

	require.NoError(t, NewInvoiceRepo(db).Delete(ctx, inv.ID))
	require.NoError(t, integrity.BeforeDelete(ctx, clinic.EntityAppointment, f.appt.ID))
	require.NoError(t, NewAppointmentRepo(db).Delete(ctx, f.appt.ID))

	ok, err = store.Exists(ctx, clinic.EntityMedicalRecord, rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_UnknownEntity(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewStore(db).Exists(context.Background(), clinic.Entity("Nope"), 1)
	assert.Error(t, err)
}
