// Package catalog administra los servicios que ofrece la clínica
// (consulta, vacunación, cirugía...). Se llama catalog para no chocar
// con los *Service de cada módulo.
package catalog

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
		log:       logger.OrNop(log).With(map[string]any{"module": "catalog"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	Name        string   `json:"service_name" validate:"required,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0,lt=100000000,dec2"`
}

type UpdateInput struct {
	Name *string `json:"service_name" validate:"omitnil,min=1,max=100"`
	// null borra la descripción
	Description clinic.Nullable[string] `json:"description" swaggertype:"string"`
	Price       *float64                `json:"price" validate:"omitnil,gte=0,lt=100000000,dec2"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := clinic.Validate(in); err != nil {
		return clinic.Service{}, err
	}

	now := s.now()
	v := clinic.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       clinic.Round2(*in.Price),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return clinic.Service{}, err
	}

	s.log.Info("service created", map[string]any{"service_id": v.ID})
	return v, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.Service, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.Service, error) {
	v, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.Service{}, err
	}

	clinic.TrimSpace(&in.Name)
	if err := clinic.Validate(in); err != nil {
		return clinic.Service{}, err
	}

	if in.Name != nil {
		v.Name = *in.Name
	}
	in.Description.Apply(&v.Description)
	if in.Price != nil {
		v.Price = clinic.Round2(*in.Price)
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &v); err != nil {
		return clinic.Service{}, err
	}

	s.log.Info("service updated", map[string]any{"service_id": id})
	return v, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityService, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("service removed", map[string]any{"service_id": id})
	return nil
}
