package memory

import (
	"context"

	"pet-clinic/internal/domain/clinic"
)

// crud implementa clinic.Repository[T] sobre una tabla del Store.
// Cada entidad define cómo se llega a su ID y cómo se pueblan sus relaciones.
type crud[T any] struct {
	s      *Store
	entity clinic.Entity
	table  func(*Store) *table[T]
	id     func(*T) *int64
	bare   func(T) T
	fill   func(*Store, *T)

	// fk devuelve la FK de una columna (nil = sin FKs o FK nula).
	fk func(T, string) *int64
	// unique valida índices únicos propios de la entidad (email).
	unique func(s *Store, v T, selfID int64) error
}

// constraints hace en memoria lo que en Postgres resuelven las FKs y los
// índices únicos. Se llama con el lock de escritura tomado.
func (c crud[T]) constraints(v T, selfID int64) error {
	if c.fk != nil {
		for _, rel := range clinic.Relations {
			if rel.Child != c.entity {
				continue
			}
			ref := c.fk(v, rel.Column)
			if ref == nil {
				continue
			}
			if !c.s.has(rel.Parent, *ref) {
				return clinic.NotFound(rel.Parent, *ref)
			}
			if !rel.OneToOne {
				continue
			}
			for _, other := range c.s.referencing(rel, *ref) {
				if other != selfID {
					return clinic.Conflict("%s with ID %d already has a %s", rel.Parent.Label(), *ref, rel.Child.Label())
				}
			}
		}
	}
	if c.unique != nil {
		return c.unique(c.s, v, selfID)
	}
	return nil
}

func (c crud[T]) Create(ctx context.Context, v *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.constraints(*v, 0); err != nil {
		return err
	}
	t := c.table(c.s)
	id := t.next()
	*c.id(v) = id
	t.put(id, c.bare(*v))
	return nil
}

func (c crud[T]) Get(ctx context.Context, id int64) (T, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	v, ok := c.table(c.s).get(id)
	if !ok {
		var zero T
		return zero, clinic.NotFound(c.entity, id)
	}
	c.fill(c.s, &v)
	return v, nil
}

func (c crud[T]) List(ctx context.Context) ([]T, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := c.table(c.s).list()
	for i := range out {
		c.fill(c.s, &out[i])
	}
	return out, nil
}

func (c crud[T]) Update(ctx context.Context, v *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	t := c.table(c.s)
	id := *c.id(v)
	if !t.has(id) {
		return clinic.NotFound(c.entity, id)
	}
	if err := c.constraints(*v, id); err != nil {
		return err
	}
	t.put(id, c.bare(*v))
	return nil
}

// Delete respeta la política de Relations igual que ON DELETE en SQL:
// restrict corta con conflicto y cascade se lleva a los hijos.
func (c crud[T]) Delete(ctx context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if !c.table(c.s).has(id) {
		return clinic.NotFound(c.entity, id)
	}
	for _, rel := range clinic.Relations {
		if rel.Parent != c.entity || rel.OnDelete != clinic.Restrict {
			continue
		}
		if ids := c.s.referencing(rel, id); len(ids) > 0 {
			return clinic.Conflict("%s with ID %d is referenced by %d %s record(s)", c.entity.Label(), id, len(ids), rel.Child.Label())
		}
	}
	for _, rel := range clinic.Relations {
		if rel.Parent != c.entity || rel.OnDelete != clinic.Cascade {
			continue
		}
		for _, child := range c.s.referencing(rel, id) {
			c.s.remove(rel.Child, child)
		}
	}
	c.table(c.s).del(id)
	return nil
}
