package repositories

import (
	"fmt"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
)

// collection is the kind-agnostic view of one typed bucket
type collection interface {
	len() int
	at(i int) models.Entity
	index(id string) int
	push(e models.Entity) error
	removeAt(i int) models.Entity
	removeWhere(match func(models.Entity) bool) []models.Entity
	stage(items []models.Entity) (func(), error)
	ids() []string
}

// bucket holds the live, ordered slice for one entity kind
type bucket[T models.Entity] struct {
	items []T
}

func (b *bucket[T]) len() int { return len(b.items) }

func (b *bucket[T]) at(i int) models.Entity { return b.items[i] }

func (b *bucket[T]) index(id string) int {
	for i, item := range b.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

func (b *bucket[T]) push(e models.Entity) error {
	v, ok := e.(T)
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrInvalidEntity, fmt.Sprintf("cannot store %T as %T", e, v))
	}
	b.items = append(b.items, v)
	return nil
}

func (b *bucket[T]) removeAt(i int) models.Entity {
	removed := b.items[i]
	b.items = append(b.items[:i], b.items[i+1:]...)
	return removed
}

func (b *bucket[T]) removeWhere(match func(models.Entity) bool) []models.Entity {
	var removed []models.Entity
	kept := b.items[:0]
	for _, item := range b.items {
		if match(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	clear(b.items[len(kept):])
	b.items = kept
	return removed
}

// stage converts items up front and returns a commit func, so a batch of
// replacements can be checked completely before any bucket changes
func (b *bucket[T]) stage(items []models.Entity) (func(), error) {
	typed := make([]T, 0, len(items))
	for i, e := range items {
		v, ok := e.(T)
		if !ok || isNil(e) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity,
				fmt.Sprintf("item %d: cannot store %T as %T", i, e, v))
		}
		typed = append(typed, v)
	}
	return func() { b.items = typed }, nil
}

func (b *bucket[T]) ids() []string {
	out := make([]string, len(b.items))
	for i, item := range b.items {
		out[i] = item.GetID()
	}
	return out
}
