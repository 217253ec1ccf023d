package appointments

import "pet-clinic/internal/domain/clinic"

type Repository interface {
	clinic.Repository[clinic.Appointment]
}
