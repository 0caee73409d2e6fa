// Package registry provides an id- and name-indexed entity store that
// notifies observers about every change.
//
// A Registry is not safe for concurrent use. All calls are expected to run on
// the hub goroutine.
package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a rename targets a missing entity.
var ErrNotFound = errors.New("not found")

// Entity is anything that can be stored in a Registry.
type Entity interface {
	ID() string
	Name() string
	SetName(name string)
}

// Rename describes a completed rename.
type Rename struct {
	ID      string
	OldName string
	NewName string
}

// Registry maps id to entity and name to id.
type Registry[T Entity] struct {
	items   map[string]T
	names   map[string]string
	order   []string
	added   Signal[T]
	removed Signal[T]
	renamed Signal[Rename]
	changed Signal[struct{}]
}

// New returns an empty registry.
func New[T Entity]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
		names: make(map[string]string),
	}
}

// Add stores item under its id and current name.
// Adding an id that is already present replaces the stored entity.
func (r *Registry[T]) Add(item T) T {
	id := item.ID()
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = item
	r.names[item.Name()] = id

	r.added.Emit(item)
	r.changed.Emit(struct{}{})
	return item
}

// Get looks an entity up by id.
func (r *Registry[T]) Get(id string) (T, bool) {
	item, ok := r.items[id]
	return item, ok
}

// GetByName looks an entity up by name. When several entities share a name
// the most recently added or renamed one wins.
func (r *Registry[T]) GetByName(name string) (T, bool) {
	id, ok := r.names[name]
	if !ok {
		var zero T
		return zero, false
	}
	return r.Get(id)
}

// All returns every entity in insertion order.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Len returns the number of stored entities.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Rename moves the entity indexed under oldName to newName.
func (r *Registry[T]) Rename(oldName, newName string) error {
	id, ok := r.names[oldName]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldName, ErrNotFound)
	}
	r.rename(id, oldName, newName)
	return nil
}

// RenameByID renames the entity with the given id. The old name key is only
// dropped if it still points at this entity.
func (r *Registry[T]) RenameByID(id, newName string) error {
	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("rename id %q: %w", id, ErrNotFound)
	}
	r.rename(id, item.Name(), newName)
	return nil
}

func (r *Registry[T]) rename(id, oldName, newName string) {
	if r.names[oldName] == id {
		delete(r.names, oldName)
	}
	r.names[newName] = id
	r.items[id].SetName(newName)

	r.renamed.Emit(Rename{ID: id, OldName: oldName, NewName: newName})
	r.changed.Emit(struct{}{})
}

// Remove deletes the entity with the given id. It returns false when the id
// is unknown.
func (r *Registry[T]) Remove(id string) bool {
	item, ok := r.items[id]
	if !ok {
		return false
	}
	delete(r.items, id)
	if r.names[item.Name()] == id {
		delete(r.names, item.Name())
	}
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}

	r.removed.Emit(item)
	r.changed.Emit(struct{}{})
	return true
}

// Touch notifies change observers without mutating the registry.
func (r *Registry[T]) Touch() {
	r.changed.Emit(struct{}{})
}

// OnAdded subscribes to additions.
func (r *Registry[T]) OnAdded(fn func(T)) func() {
	return r.added.Subscribe(fn)
}

// OnRemoved subscribes to removals.
func (r *Registry[T]) OnRemoved(fn func(T)) func() {
	return r.removed.Subscribe(fn)
}

// OnRenamed subscribes to renames.
func (r *Registry[T]) OnRenamed(fn func(Rename)) func() {
	return r.renamed.Subscribe(fn)
}

// OnChanged subscribes to every mutation and Touch.
func (r *Registry[T]) OnChanged(fn func()) func() {
	return r.changed.Subscribe(func(struct{}) { fn() })
}
