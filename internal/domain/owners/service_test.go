package owners

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-clinic/internal/domain/clinic"

	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	seq  int64
	byID map[int64]clinic.PetOwner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]clinic.PetOwner{}}
}

func (r *testRepo) Create(ctx context.Context, o *clinic.PetOwner) error {
	r.seq++
	o.ID = r.seq
	r.byID[o.ID] = *o
	return nil
}

func (r *testRepo) Get(ctx context.Context, id int64) (clinic.PetOwner, error) {
	o, ok := r.byID[id]
	if !ok {
		return clinic.PetOwner{}, clinic.NotFound(clinic.EntityPetOwner, id)
	}
	return o, nil
}

func (r *testRepo) List(ctx context.Context) ([]clinic.PetOwner, error) {
	out := make([]clinic.PetOwner, 0, len(r.byID))
	for id := int64(1); id <= r.seq; id++ {
		if o, ok := r.byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, o *clinic.PetOwner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return clinic.NotFound(clinic.EntityPetOwner, o.ID)
	}
	r.byID[o.ID] = *o
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return clinic.NotFound(clinic.EntityPetOwner, id)
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error) {
	for _, o := range r.byID {
		if strings.EqualFold(o.Email, email) {
			return o, true, nil
		}
	}
	return clinic.PetOwner{}, false, nil
}

// refs simula las FKs que apuntan a owners.
type refs struct {
	pets map[int64][]int64
}

func (f refs) Exists(ctx context.Context, e clinic.Entity, id int64) (bool, error) {
	return true, nil
}

func (f refs) Referencing(ctx context.Context, rel clinic.Relation, parentID int64) ([]int64, error) {
	if rel.Child == clinic.EntityPet && rel.Parent == clinic.EntityPetOwner {
		return f.pets[parentID], nil
	}
	return nil, nil
}

func (f refs) Delete(ctx context.Context, e clinic.Entity, id int64) error { return nil }

func newTestService(r refs) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, clinic.NewIntegrity(r), nil, bcrypt.MinCost)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func jane() CreateInput {
	return CreateInput{FullName: " Jane Doe ", Phone: "555-0100", Email: "jane@example.com", Password: "secret1"}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_HashesPasswordAndTrims(t *testing.T) {
	svc, repo := newTestService(refs{})

	o, err := svc.Create(context.Background(), jane())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID != 1 || o.FullName != "Jane Doe" {
		t.Fatalf("unexpected owner: %+v", o)
	}
	if o.PasswordHash == "secret1" || !clinic.CheckPassword(repo.byID[1].PasswordHash, "secret1") {
		t.Fatalf("password must be stored as a verifiable hash")
	}
	if !o.CreatedAt.Equal(svc.now()) || !o.UpdatedAt.Equal(svc.now()) {
		t.Fatalf("timestamps not set from clock: %+v", o)
	}
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	svc, repo := newTestService(refs{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, jane()); err != nil {
		t.Fatalf("create: %v", err)
	}
	in := jane()
	in.Email = "JANE@EXAMPLE.COM"
	_, err := svc.Create(ctx, in)

	var cf *clinic.ConflictError
	if !errors.As(err, &cf) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 owner, got %d", len(repo.byID))
	}
}

func TestCreate_ValidationError(t *testing.T) {
	svc, _ := newTestService(refs{})

	_, err := svc.Create(context.Background(), CreateInput{FullName: "x", Email: "nope", Password: "123"})

	var verr *clinic.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []string{"phone", "email", "password"} {
		if verr.Fields[f] == "" {
			t.Fatalf("expected error on %s, got %v", f, verr.Fields)
		}
	}
}

func TestUpdate_PartialKeepsOmittedFields(t *testing.T) {
	svc, _ := newTestService(refs{})
	ctx := context.Background()

	o, _ := svc.Create(ctx, jane())
	oldHash := o.PasswordHash

	phone := "555-9999"
	blank := "  "
	got, err := svc.Update(ctx, o.ID, UpdateInput{Phone: &phone, Password: &blank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Phone != phone || got.FullName != "Jane Doe" || got.Email != "jane@example.com" {
		t.Fatalf("unexpected owner after update: %+v", got)
	}
	if got.PasswordHash != oldHash {
		t.Fatalf("blank password must keep the current hash")
	}
}

func TestUpdate_EmailTakenByOtherOwner(t *testing.T) {
	svc, _ := newTestService(refs{})
	ctx := context.Background()

	a, _ := svc.Create(ctx, jane())
	other := jane()
	other.Email = "john@example.com"
	if _, err := svc.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	taken := "john@example.com"
	_, err := svc.Update(ctx, a.ID, UpdateInput{Email: &taken})
	var cf *clinic.ConflictError
	if !errors.As(err, &cf) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	// el propio email (con otro case) no es conflicto
	same := "Jane@Example.com"
	if _, err := svc.Update(ctx, a.ID, UpdateInput{Email: &same}); err != nil {
		t.Fatalf("update own email: %v", err)
	}
}

func TestUpdateAndRemove_UnknownIDIsNotFound(t *testing.T) {
	svc, _ := newTestService(refs{})
	ctx := context.Background()

	var nf *clinic.NotFoundError
	if _, err := svc.Update(ctx, 7, UpdateInput{}); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on update, got %v", err)
	}
	if err := svc.Remove(ctx, 7); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on remove, got %v", err)
	}
}

func TestRemove_RestrictedByPets(t *testing.T) {
	svc, repo := newTestService(refs{pets: map[int64][]int64{1: {10}}})
	ctx := context.Background()

	o, _ := svc.Create(ctx, jane())

	err := svc.Remove(ctx, o.ID)
	var cf *clinic.ConflictError
	if !errors.As(err, &cf) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if _, ok := repo.byID[o.ID]; !ok {
		t.Fatalf("owner must not be deleted")
	}
}
