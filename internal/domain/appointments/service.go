package appointments

import (
	"context"
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
		log:       logger.OrNop(log).With(map[string]any{"module": "appointments"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	PetID     *int64           `json:"pet_id" validate:"required,gt=0"`
	ServiceID *int64           `json:"service_id" validate:"required,gt=0"`
	StaffID   *int64           `json:"staff_id" validate:"required,gt=0"`
	OwnerID   *int64           `json:"owner_id" validate:"omitnil,gt=0"`
	Date      *clinic.DateTime `json:"appointment_date" validate:"required" swaggertype:"string" format:"date-time"`
	// Vacío = Pending
	Status clinic.AppointmentStatus `json:"status" validate:"omitempty,oneof=Pending Completed Canceled"`
}

type UpdateInput struct {
	PetID     *int64                    `json:"pet_id" validate:"omitnil,gt=0"`
	ServiceID *int64                    `json:"service_id" validate:"omitnil,gt=0"`
	StaffID   *int64                    `json:"staff_id" validate:"omitnil,gt=0"`
	OwnerID   clinic.Nullable[int64]    `json:"owner_id" validate:"omitempty,gt=0" swaggertype:"integer"`
	Date      *clinic.DateTime          `json:"appointment_date" swaggertype:"string" format:"date-time"`
	Status    *clinic.AppointmentStatus `json:"status" validate:"omitnil,oneof=Pending Completed Canceled"`
}

func refsOf(a clinic.Appointment) clinic.Refs {
	return clinic.Refs{
		"pet_id":     a.PetID,
		"service_id": a.ServiceID,
		"staff_id":   a.StaffID,
	}.With("owner_id", a.OwnerID)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.Appointment, error) {
	if err := clinic.Validate(in); err != nil {
		return clinic.Appointment{}, err
	}

	now := s.now()
	a := clinic.Appointment{
		PetID:     *in.PetID,
		ServiceID: *in.ServiceID,
		StaffID:   *in.StaffID,
		OwnerID:   in.OwnerID,
		Date:      in.Date.Time,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.Status == "" {
		a.Status = clinic.AppointmentPending
	}

	if err := s.integrity.CheckRefs(ctx, clinic.EntityAppointment, refsOf(a)); err != nil {
		return clinic.Appointment{}, err
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return clinic.Appointment{}, err
	}

	s.log.Info("appointment created", map[string]any{
		"appointment_id": a.ID,
		"pet_id":         a.PetID,
		"staff_id":       a.StaffID,
	})
	return a, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.Appointment, error) {
	return s.repo.Get(ctx, id)
}

// Update permite cualquier transición de status (Completed -> Pending incluido).
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.Appointment, error) {
	a, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.Appointment{}, err
	}
	if err := clinic.Validate(in); err != nil {
		return clinic.Appointment{}, err
	}

	if in.PetID != nil {
		a.PetID = *in.PetID
	}
	if in.ServiceID != nil {
		a.ServiceID = *in.ServiceID
	}
	if in.StaffID != nil {
		a.StaffID = *in.StaffID
	}
	in.OwnerID.Apply(&a.OwnerID)
	if in.Date != nil {
		a.Date = in.Date.Time
	}
	if in.Status != nil {
		a.Status = *in.Status
	}

	if err := s.integrity.CheckRefs(ctx, clinic.EntityAppointment, refsOf(a)); err != nil {
		return clinic.Appointment{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &a); err != nil {
		return clinic.Appointment{}, err
	}

	s.log.Info("appointment updated", map[string]any{"appointment_id": id, "status": a.Status})
	return s.FindOne(ctx, id)
}

// Remove borra en cascada la historia clínica de la cita; si ya está
// facturada devuelve Conflict.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityAppointment, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("appointment removed", map[string]any{"appointment_id": id})
	return nil
}
