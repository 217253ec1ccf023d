package postgres

import (
	"context"
	"fmt"

	"pet-clinic/internal/domain/clinic"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type tableMeta struct {
	table string
	pk    string
}

var tables = map[clinic.Entity]tableMeta{
	clinic.EntityPetOwner:      {"pet_owners", "owner_id"},
	clinic.EntityPet:           {"pets", "pet_id"},
	clinic.EntityStaff:         {"staff", "staff_id"},
	clinic.EntityService:       {"services", "service_id"},
	clinic.EntityAppointment:   {"appointments", "appointment_id"},
	clinic.EntityMedicalRecord: {"medical_records", "record_id"},
	clinic.EntityInvoice:       {"invoices", "invoice_id"},
}

func metaOf(e clinic.Entity) (tableMeta, error) {
	m, ok := tables[e]
	if !ok {
		return tableMeta{}, errors.Errorf("unknown entity %q", e)
	}
	return m, nil
}

// Store implementa clinic.RefStore sobre gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Exists(ctx context.Context, e clinic.Entity, id int64) (bool, error) {
	m, err := metaOf(e)
	if err != nil {
		return false, err
	}
	var n int64
	err = s.db.WithContext(ctx).Table(m.table).Where(m.pk+" = ?", id).Count(&n).Error
	if err != nil {
		return false, errors.Wrapf(err, "exists %s %d", e, id)
	}
	return n > 0, nil
}

func (s *Store) Referencing(ctx context.Context, rel clinic.Relation, parentID int64) ([]int64, error) {
	m, err := metaOf(rel.Child)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0)
	err = s.db.WithContext(ctx).
		Table(m.table).
		Where(rel.Column+" = ?", parentID).
		Order(m.pk).
		Pluck(m.pk, &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "referencing %s.%s = %d", rel.Child, rel.Column, parentID)
	}
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, e clinic.Entity, id int64) error {
	m, err := metaOf(e)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m.table, m.pk), id)
	if res.Error != nil {
		return translate(res.Error, e, id)
	}
	return nil
}

// translate lleva los errores de gorm (TranslateError=true) a errores de dominio.
func translate(err error, e clinic.Entity, id int64) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return clinic.NotFound(e, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return clinic.Conflict("%s violates a unique constraint", e.Label())
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return clinic.Conflict("%s violates a foreign key constraint", e.Label())
	}
	return errors.Wrapf(err, "%s %d", e, id)
}
