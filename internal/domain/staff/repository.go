package staff

import (
	"context"

	"pet-clinic/internal/domain/clinic"
)

type Repository interface {
	clinic.Repository[clinic.Staff]
	FindByEmail(ctx context.Context, email string) (clinic.Staff, bool, error)
}
