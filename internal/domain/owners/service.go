package owners

import (
	"context"
	"strings"
	"time"

	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/platform/logger"
)

type Service struct {
	repo       Repository
	integrity  *clinic.Integrity
	log        logger.Logger
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, integrity *clinic.Integrity, log logger.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		integrity:  integrity,
		log:        logger.OrNop(log).With(map[string]any{"module": "owners"}),
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type CreateInput struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	FullName *string `json:"full_name" validate:"omitnil,min=1,max=100"`
	Phone    *string `json:"phone" validate:"omitnil,min=1,max=20"`
	Email    *string `json:"email" validate:"omitnil,email,max=100"`
	// Vacío = se mantiene el hash actual.
	Password *string `json:"password" validate:"omitnil,min=6,max=255"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.PetOwner, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := clinic.Validate(in); err != nil {
		return clinic.PetOwner{}, err
	}

	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return clinic.PetOwner{}, err
	}

	hash, err := clinic.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return clinic.PetOwner{}, err
	}

	now := s.now()
	o := clinic.PetOwner{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, &o); err != nil {
		return clinic.PetOwner{}, err
	}

	s.log.Info("pet owner created", map[string]any{"owner_id": o.ID})
	return o, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.PetOwner, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.PetOwner, error) {
	return s.repo.Get(ctx, id)
}

// FindByEmail lo usa el login de owners.
func (s *Service) FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.PetOwner, error) {
	o, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.PetOwner{}, err
	}

	clinic.TrimSpace(&in.FullName, &in.Phone, &in.Email)
	if in.Password != nil && strings.TrimSpace(*in.Password) == "" {
		in.Password = nil
	}
	if err := clinic.Validate(in); err != nil {
		return clinic.PetOwner{}, err
	}

	if in.Email != nil && *in.Email != o.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return clinic.PetOwner{}, err
		}
		o.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := clinic.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return clinic.PetOwner{}, err
		}
		o.PasswordHash = hash
	}
	if in.FullName != nil {
		o.FullName = *in.FullName
	}
	if in.Phone != nil {
		o.Phone = *in.Phone
	}

	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &o); err != nil {
		return clinic.PetOwner{}, err
	}

	s.log.Info("pet owner updated", map[string]any{"owner_id": id})
	return o, nil
}

// Remove falla con Conflict si el owner tiene mascotas, citas o facturas.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityPetOwner, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("pet owner removed", map[string]any{"owner_id": id})
	return nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if found && existing.ID != selfID {
		return clinic.Conflict("Email %s is already registered", email)
	}
	return nil
}
