package invoices

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
		log:       logger.OrNop(log).With(map[string]any{"module": "invoices"}),
		now:       time.Now,
	}
}

// Montos NUMERIC(10,2). total_amount lo decide quien factura.
type CreateInput struct {
	AppointmentID  *int64               `json:"appointment_id" validate:"required,gt=0"`
	OwnerID        *int64               `json:"owner_id" validate:"omitnil,gt=0"`
	BaseAmount     *float64             `json:"base_amount" validate:"required,gte=0,lt=100000000,dec2"`
	AdditionalCost *float64             `json:"additional_cost" validate:"omitnil,gte=0,lt=100000000,dec2"`
	TotalAmount    *float64             `json:"total_amount" validate:"required,gte=0,lt=100000000,dec2"`
	PaymentMethod  string               `json:"payment_method" validate:"required,max=50"`
	PaymentStatus  clinic.PaymentStatus `json:"payment_status" validate:"omitempty,oneof=Pending Paid Canceled"`
	PaymentDate    *clinic.Date         `json:"payment_date" swaggertype:"string" format:"date"`
	IssuedBy       string               `json:"issued_by" validate:"required,max=100"`
}

type UpdateInput struct {
	AppointmentID  *int64                       `json:"appointment_id" validate:"omitnil,gt=0"`
	OwnerID        clinic.Nullable[int64]       `json:"owner_id" validate:"omitempty,gt=0" swaggertype:"integer"`
	BaseAmount     *float64                     `json:"base_amount" validate:"omitnil,gte=0,lt=100000000,dec2"`
	AdditionalCost *float64                     `json:"additional_cost" validate:"omitnil,gte=0,lt=100000000,dec2"`
	TotalAmount    *float64                     `json:"total_amount" validate:"omitnil,gte=0,lt=100000000,dec2"`
	PaymentMethod  *string                      `json:"payment_method" validate:"omitnil,min=1,max=50"`
	PaymentStatus  *clinic.PaymentStatus        `json:"payment_status" validate:"omitnil,oneof=Pending Paid Canceled"`
	PaymentDate    clinic.Nullable[clinic.Date] `json:"payment_date" swaggertype:"string" format:"date"`
	IssuedBy       *string                      `json:"issued_by" validate:"omitnil,min=1,max=100"`
}

func refsOf(i clinic.Invoice) clinic.Refs {
	return clinic.Refs{"appointment_id": i.AppointmentID}.With("owner_id", i.OwnerID)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (clinic.Invoice, error) {
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.IssuedBy = strings.TrimSpace(in.IssuedBy)
	if err := clinic.Validate(in); err != nil {
		return clinic.Invoice{}, err
	}

	now := s.now()
	inv := clinic.Invoice{
		AppointmentID: *in.AppointmentID,
		OwnerID:       in.OwnerID,
		BaseAmount:    clinic.Round2(*in.BaseAmount),
		TotalAmount:   clinic.Round2(*in.TotalAmount),
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
		PaymentDate:   in.PaymentDate,
		IssuedBy:      in.IssuedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.AdditionalCost != nil {
		inv.AdditionalCost = clinic.Round2(*in.AdditionalCost)
	}
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = clinic.PaymentPending
	}

	refs := refsOf(inv)
	if err := s.integrity.CheckRefs(ctx, clinic.EntityInvoice, refs); err != nil {
		return clinic.Invoice{}, err
	}
	if err := s.integrity.CheckOneToOne(ctx, clinic.EntityInvoice, 0, refs); err != nil {
		return clinic.Invoice{}, err
	}
	if err := s.repo.Create(ctx, &inv); err != nil {
		return clinic.Invoice{}, err
	}

	s.log.Info("invoice issued", map[string]any{
		"invoice_id":     inv.ID,
		"appointment_id": inv.AppointmentID,
		"total_amount":   inv.TotalAmount,
	})
	return inv, nil
}

func (s *Service) FindAll(ctx context.Context) ([]clinic.Invoice, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (clinic.Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (clinic.Invoice, error) {
	inv, err := s.FindOne(ctx, id)
	if err != nil {
		return clinic.Invoice{}, err
	}

	clinic.TrimSpace(&in.PaymentMethod, &in.IssuedBy)
	if err := clinic.Validate(in); err != nil {
		return clinic.Invoice{}, err
	}

	if in.AppointmentID != nil {
		inv.AppointmentID = *in.AppointmentID
	}
	in.OwnerID.Apply(&inv.OwnerID)
	if in.BaseAmount != nil {
		inv.BaseAmount = clinic.Round2(*in.BaseAmount)
	}
	if in.AdditionalCost != nil {
		inv.AdditionalCost = clinic.Round2(*in.AdditionalCost)
	}
	if in.TotalAmount != nil {
		inv.TotalAmount = clinic.Round2(*in.TotalAmount)
	}
	if in.PaymentMethod != nil {
		inv.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentStatus != nil {
		inv.PaymentStatus = *in.PaymentStatus
	}
	in.PaymentDate.Apply(&inv.PaymentDate)
	if in.IssuedBy != nil {
		inv.IssuedBy = *in.IssuedBy
	}

	refs := refsOf(inv)
	if err := s.integrity.CheckRefs(ctx, clinic.EntityInvoice, refs); err != nil {
		return clinic.Invoice{}, err
	}
	if err := s.integrity.CheckOneToOne(ctx, clinic.EntityInvoice, id, refs); err != nil {
		return clinic.Invoice{}, err
	}

	inv.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &inv); err != nil {
		return clinic.Invoice{}, err
	}

	s.log.Info("invoice updated", map[string]any{"invoice_id": id, "payment_status": inv.PaymentStatus})
	return s.FindOne(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.BeforeDelete(ctx, clinic.EntityInvoice, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("invoice removed", map[string]any{"invoice_id": id})
	return nil
}
