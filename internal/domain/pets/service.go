package pets

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
		log:       logger.OrNop(log).With(map[string]any{"module": "pets"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	OwnerID *int64        `json:"owner_id" validate:"required,gt=0"`
	Name    string        `json:"name" validate:"required,max=100"`
	Species string        `json:"species" validate:"required,max=50"`
	Gender  clinic.Gender `json:"gender" validate:"required,oneof=Male Female"`
	DOB     *clinic.Date  `json:"dob" validate:"required" swaggertype:"string" format:"date"`
	// NUMERIC(5,2)
	Weight *float64 `json:"weight" validate:"required,gt=0,lt=1000,dec2"`
}

type UpdateInput struct {
	OwnerID *int64         `json:"owner_id" validate:"omitnil,gt=0"`
	Name    *string        `json:"name" validate:"omitnil,min=1,max=100"`
	Species *string        `json:"species" validate:"omitnil,min=1,max=50"`
	Gender  *clinic.Gender `json:"gender" validate:"omitnil,oneof=Male Female"`
	DOB     *clinic.Date   `json:"dob" swaggertype:"string" format:"date"`
	Weight  *float64       `json:"weight" validate:"omitnil,gt=0,lt=1000,dec2"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.Pet, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)
	if err := clinic.Validate(in); err != nil {
		return clinic.Pet{}, err
	}

	if err := s.integrity.CheckRefs(ctx, clinic.EntityPet, clinic.Refs{"owner_id": *in.OwnerID}); err != nil {
		return clinic.Pet{}, err
	}

	now := s.now()
	p := clinic.Pet{
		OwnerID:   *in.OwnerID,
		Name:      in.Name,
		Species:   in.Species,
		Gender:    in.Gender,
		DOB:       *in.DOB,
		Weight:    clinic.Round2(*in.Weight),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return clinic.Pet{}, err
	}

	s.log.Info("pet created", map[string]any{"pet_id": p.ID, "owner_id": p.OwnerID})
	return p, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.Pet, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.Pet, error) {
	p, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.Pet{}, err
	}

	clinic.TrimSpace(&in.Name, &in.Species)
	if err := clinic.Validate(in); err != nil {
		return clinic.Pet{}, err
	}

	if in.OwnerID != nil && *in.OwnerID != p.OwnerID {
		if err := s.integrity.CheckRefs(ctx, clinic.EntityPet, clinic.Refs{"owner_id": *in.OwnerID}); err != nil {
			return clinic.Pet{}, err
		}
		p.OwnerID = *in.OwnerID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.DOB != nil {
		p.DOB = *in.DOB
	}
	if in.Weight != nil {
		p.Weight = clinic.Round2(*in.Weight)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &p); err != nil {
		return clinic.Pet{}, err
	}

	s.log.Info("pet updated", map[string]any{"pet_id": id})
	// re-lectura: si cambió el owner, la relación poblada ya no corresponde
	return s.FindOne(ctx, id)
}

// Remove: una mascota con citas o historia clínica no se puede borrar.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityPet, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("pet removed", map[string]any{"pet_id": id})
	return nil
}
