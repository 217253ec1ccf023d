package invoices

import "pet-clinic/internal/domain/clinic"

type Repository interface {
	clinic.Repository[clinic.Invoice]
}
