package medicalrecords

import "pet-clinic/internal/domain/clinic"

type Repository interface {
	clinic.Repository[clinic.MedicalRecord]
}
