package clinic

import "context"

// Repository es el contrato de persistencia común a las 7 entidades.
//   - Create asigna el ID; los timestamps los pone el service.
//   - Get/List devuelven las relaciones pobladas (un nivel).
//   - List respeta el orden de inserción (id asc).
//   - Get/Update/Delete devuelven *NotFoundError si el id no existe.
type Repository[T any] interface {
	Create(ctx context.Context, v *T) error
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

// RefStore es lo mínimo que Integrity necesita del storage.
type RefStore interface {
	Exists(ctx context.Context, e Entity, id int64) (bool, error)
	// Referencing devuelve los ids de rel.Child cuyo rel.Column apunta a parentID.
	Referencing(ctx context.Context, rel Relation, parentID int64) ([]int64, error)
	Delete(ctx context.Context, e Entity, id int64) error
}
