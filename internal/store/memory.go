package store

import (
	"context"
	"sync"
)

// Memory is an in-process Documents implementation for development and tests.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
	hub  *Hub
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string][]byte),
		hub:  NewHub(),
	}
}

func (m *Memory) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (m *Memory) List(ctx context.Context, path string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	children := make(map[string][]byte)
	for p, v := range m.docs {
		if Parent(p) == path {
			children[Key(p)] = clone(v)
		}
	}
	return children, nil
}

func (m *Memory) Put(ctx context.Context, path string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[path] = clone(value)
	m.mu.Unlock()

	m.hub.Publish(path)
	return nil
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	for p := range m.docs {
		if Within(p, path) {
			delete(m.docs, p)
		}
	}
	m.mu.Unlock()

	m.hub.Publish(path)
	return nil
}

func (m *Memory) Subscribe(_ context.Context, prefix string, fn func(path string)) (func(), error) {
	return m.hub.Subscribe(prefix, fn), nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
