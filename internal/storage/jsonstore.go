package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Store abstrait une collection persistée. L'implémentation fichier rejoue le
// modèle "tout lire / muter / tout réécrire" ; Memory sert aux tests.
type Store[T any] interface {
	Load() ([]T, error)
	Save(items []T) error
	// Mutate tient le verrou de la collection pendant lecture + fn + écriture,
	// ce qui sérialise les séquences valide-puis-mute concurrentes.
	Mutate(fn func(items []T) ([]T, error)) error
}

// Collection est une collection JSON sur disque, réécrite en entier à chaque
// mutation. Pas de format partiel ni d'append.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil // fichier absent = collection vide
	}
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", c.path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("décodage %s: %w", c.path, err)
	}
	return items, nil
}

func (c *Collection[T]) Save(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(items)
}

func (c *Collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encodage %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("écriture %s: %w", c.path, err)
	}
	return nil
}

func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err // rien n'est écrit si fn échoue
	}
	return c.save(updated)
}

// Memory est l'implémentation en mémoire de Store pour les tests.
type Memory[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewMemory[T any](items []T) *Memory[T] {
	return &Memory[T]{items: items}
}

func (m *Memory[T]) Load() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory[T]) Save(items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
	return nil
}

func (m *Memory[T]) Mutate(fn func(items []T) ([]T, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated, err := fn(m.items)
	if err != nil {
		return err
	}
	m.items = updated
	return nil
}
