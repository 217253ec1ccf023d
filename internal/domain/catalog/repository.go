package catalog

import "pet-clinic/internal/domain/clinic"

type Repository interface {
	clinic.Repository[clinic.Service]
}
