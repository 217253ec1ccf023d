package pets

import "pet-clinic/internal/domain/clinic"

type Repository interface {
	clinic.Repository[clinic.Pet]
}
