package medicalrecords

import (
	"context"
	"strings"
	"time"

	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/platform/logger"
)

type Service struct {
	repo      Repository
	integrity *clinic.Integrity
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, integrity *clinic.Integrity, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		integrity: integrity,
		log:       logger.OrNop(log).With(map[string]any{"module": "medicalrecords"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	AppointmentID *int64  `json:"appointment_id" validate:"required,gt=0"`
	PetID         *int64  `json:"pet_id" validate:"omitnil,gt=0"`
	StaffID       *int64  `json:"staff_id" validate:"omitnil,gt=0"`
	Diagnosis     string  `json:"diagnosis" validate:"required"`
	Treatment     string  `json:"treatment" validate:"required"`
	Note          *string `json:"note"`
}

type UpdateInput struct {
	AppointmentID *int64                  `json:"appointment_id" validate:"omitnil,gt=0"`
	PetID         clinic.Nullable[int64]  `json:"pet_id" validate:"omitempty,gt=0" swaggertype:"integer"`
	StaffID       clinic.Nullable[int64]  `json:"staff_id" validate:"omitempty,gt=0" swaggertype:"integer"`
	Diagnosis     *string                 `json:"diagnosis" validate:"omitnil,min=1"`
	Treatment     *string                 `json:"treatment" validate:"omitnil,min=1"`
	Note          clinic.Nullable[string] `json:"note" swaggertype:"string"`
}

func refsOf(m clinic.MedicalRecord) clinic.Refs {
	return clinic.Refs{"appointment_id": m.AppointmentID}.
		With("pet_id", m.PetID).
		With("staff_id", m.StaffID)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.MedicalRecord, error) {
	in.Diagnosis = strings.TrimSpace(in.Diagnosis)
	in.Treatment = strings.TrimSpace(in.Treatment)
	if err := clinic.Validate(in); err != nil {
		return clinic.MedicalRecord{}, err
	}

	m := clinic.MedicalRecord{
		AppointmentID: *in.AppointmentID,
		PetID:         in.PetID,
		StaffID:       in.StaffID,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Note:          in.Note,
		CreatedAt:     s.now(),
	}

	refs := refsOf(m)
	if err := s.integrity.CheckRefs(ctx, clinic.EntityMedicalRecord, refs); err != nil {
		return clinic.MedicalRecord{}, err
	}
	if err := s.integrity.CheckOneToOne(ctx, clinic.EntityMedicalRecord, 0, refs); err != nil {
		return clinic.MedicalRecord{}, err
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return clinic.MedicalRecord{}, err
	}

	s.log.Info("medical record created", map[string]any{
		"record_id":      m.ID,
		"appointment_id": m.AppointmentID,
	})
	return m, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.MedicalRecord, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.MedicalRecord, error) {
	m, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.MedicalRecord{}, err
	}

	clinic.TrimSpace(&in.Diagnosis, &in.Treatment)
	if err := clinic.Validate(in); err != nil {
		return clinic.MedicalRecord{}, err
	}

	if in.AppointmentID != nil {
		m.AppointmentID = *in.AppointmentID
	}
	in.PetID.Apply(&m.PetID)
	in.StaffID.Apply(&m.StaffID)
	if in.Diagnosis != nil {
		m.Diagnosis = *in.Diagnosis
	}
	if in.Treatment != nil {
		m.Treatment = *in.Treatment
	}
	in.Note.Apply(&m.Note)

	refs := refsOf(m)
	if err := s.integrity.CheckRefs(ctx, clinic.EntityMedicalRecord, refs); err != nil {
		return clinic.MedicalRecord{}, err
	}
	if err := s.integrity.CheckOneToOne(ctx, clinic.EntityMedicalRecord, id, refs); err != nil {
		return clinic.MedicalRecord{}, err
	}

	if err := s.repo.Update(ctx, &m); err != nil {
		return clinic.MedicalRecord{}, err
	}

	s.log.Info("medical record updated", map[string]any{"record_id": id})
	return s.FindOne(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityMedicalRecord, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("medical record removed", map[string]any{"record_id": id})
	return nil
}
