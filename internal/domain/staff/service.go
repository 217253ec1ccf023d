package staff

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
		log:        logger.OrNop(log).With(map[string]any{"module": "staff"}),
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type CreateInput struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,max=50"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

type UpdateInput struct {
	FullName *string `json:"full_name" validate:"omitnil,min=1,max=100"`
	Role     *string `json:"role" validate:"omitnil,min=1,max=50"`
	Phone    *string `json:"phone" validate:"omitnil,min=1,max=20"`
	Email    *string `json:"email" validate:"omitnil,email,max=100"`
	Password *string `json:"password" validate:"omitnil,min=6,max=255"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.Staff, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := clinic.Validate(in); err != nil {
		return clinic.Staff{}, err
	}

	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return clinic.Staff{}, err
	}

	hash, err := clinic.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return clinic.Staff{}, err
	}

	now := s.now()
	m := clinic.Staff{
		FullName:     in.FullName,
		Role:         in.Role,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return clinic.Staff{}, err
	}

	s.log.Info("staff member created", map[string]any{"staff_id": m.ID, "role": m.Role})
	return m, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.Staff, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.Staff, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (clinic.Staff, bool, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.Staff, error) {
	m, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.Staff{}, err
	}

	clinic.TrimSpace(&in.FullName, &in.Role, &in.Phone, &in.Email)
	if in.Password != nil && strings.TrimSpace(*in.Password) == "" {
		in.Password = nil
	}
	if err := clinic.Validate(in); err != nil {
		return clinic.Staff{}, err
	}

	if in.Email != nil && *in.Email != m.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return clinic.Staff{}, err
		}
		m.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := clinic.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return clinic.Staff{}, err
		}
		m.PasswordHash = hash
	}
	if in.FullName != nil {
		m.FullName = *in.FullName
	}
	if in.Role != nil {
		m.Role = *in.Role
	}
	if in.Phone != nil {
		m.Phone = *in.Phone
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &m); err != nil {
		return clinic.Staff{}, err
	}

	s.log.Info("staff member updated", map[string]any{"staff_id": id})
	return m, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityStaff, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("staff member removed", map[string]any{"staff_id": id})
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
