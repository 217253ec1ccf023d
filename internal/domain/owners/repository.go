package owners

import (
	"context"

	"pet-clinic/internal/domain/clinic"
)

type Repository interface {
	clinic.Repository[clinic.PetOwner]
	FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error)
}
