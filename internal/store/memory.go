package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/formbureau/formdesk/internal/models"
)

type MemoryStore struct {
	mu     sync.RWMutex
	actors map[uuid.UUID]models.Actor
	forms  map[uuid.UUID]models.Form
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		actors: map[uuid.UUID]models.Actor{},
		forms:  map[uuid.UUID]models.Form{},
	}
}

func (m *MemoryStore) CreateActor(ctx context.Context, in ActorInput) (models.Actor, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	now := time.Now().UTC()
	actor := models.Actor{
		ID:        in.ID,
		Name:      in.Name,
		Grade:     in.Grade,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actors[actor.ID] = actor
	return actor, nil
}

func (m *MemoryStore) GetActor(ctx context.Context, id uuid.UUID) (models.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	actor, ok := m.actors[id]
	if !ok {
		return models.Actor{}, ErrNotFound
	}
	return actor, nil
}

func (m *MemoryStore) UpdateActorGrade(ctx context.Context, id uuid.UUID, grade int) (models.Actor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	actor, ok := m.actors[id]
	if !ok {
		return models.Actor{}, ErrNotFound
	}
	actor.Grade = grade
	actor.UpdatedAt = time.Now().UTC()
	m.actors[id] = actor
	return actor, nil
}

func (m *MemoryStore) CreateForm(ctx context.Context, in FormInput) (models.Form, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	now := time.Now().UTC()
	form := models.Form{
		ID:        in.ID,
		Kind:      in.Kind,
		Target:    in.Target,
		SignGrade: in.SignGrade,
		ExecGrade: in.ExecGrade,
		Signed:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms[form.ID] = form
	return form, nil
}

func (m *MemoryStore) GetForm(ctx context.Context, id uuid.UUID) (models.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	form, ok := m.forms[id]
	if !ok {
		return models.Form{}, ErrNotFound
	}
	return form, nil
}

func (m *MemoryStore) ListForms(ctx context.Context, filter ListFormsFilter) ([]models.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var forms []models.Form
	for _, form := range m.forms {
		if filter.Kind != "" && form.Kind != filter.Kind {
			continue
		}
		if filter.Signed != nil && form.Signed != *filter.Signed {
			continue
		}
		forms = append(forms, form)
	}
	sort.Slice(forms, func(i, j int) bool {
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})
	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start > len(forms) {
		start = len(forms)
	}
	limit := normalizeLimit(filter.Limit)
	end := start + limit
	if end > len(forms) {
		end = len(forms)
	}
	result := make([]models.Form, end-start)
	copy(result, forms[start:end])
	return result, nil
}

func (m *MemoryStore) MarkFormSigned(ctx context.Context, id uuid.UUID) (models.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	form, ok := m.forms[id]
	if !ok {
		return models.Form{}, ErrNotFound
	}
	form.Signed = true
	form.UpdatedAt = time.Now().UTC()
	m.forms[id] = form
	return form, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }
