package group

import (
	"context"
	"sync"
)

type memRepo struct {
	mu     sync.Mutex
	groups map[string]*Group
}

func NewMemoryRepo() Repo {
	return &memRepo{groups: make(map[string]*Group)}
}

func (m *memRepo) Save(ctx context.Context, g *Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[g.ID] = g.clone()
	return nil
}

func (m *memRepo) Get(ctx context.Context, id string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return g.clone(), nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(m.groups, id)
	return nil
}
