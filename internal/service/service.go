package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/formbureau/formdesk/internal/audit"
	"github.com/formbureau/formdesk/internal/auth"
	"github.com/formbureau/formdesk/internal/bureau"
	"github.com/formbureau/formdesk/internal/models"
	"github.com/formbureau/formdesk/internal/store"
)

// Service drives the clearance workflow over persisted actors and forms. The
// permission checks themselves live in the bureau package; this layer
// rehydrates domain values from records, persists the resulting state and
// emits one audit event per state change. Domain errors pass through to the
// caller untranslated.
type Service struct {
	store   store.Store
	factory *bureau.Factory
	audit   audit.Emitter
}

func New(st store.Store, factory *bureau.Factory, emitter audit.Emitter) *Service {
	return &Service{store: st, factory: factory, audit: emitter}
}

type CreateActorRequest struct {
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

func (s *Service) CreateActor(ctx context.Context, req CreateActorRequest) (models.Actor, error) {
	if req.Name == "" {
		return models.Actor{}, fmt.Errorf("name required")
	}
	// Validates the grade range before anything is persisted.
	if _, err := bureau.NewActor(req.Name, req.Grade); err != nil {
		return models.Actor{}, err
	}
	rec, err := s.store.CreateActor(ctx, store.ActorInput{Name: req.Name, Grade: req.Grade})
	if err != nil {
		return models.Actor{}, err
	}
	s.emit(ctx, "actor.created", rec.ID.String(), map[string]interface{}{
		"actorId": rec.ID.String(),
		"name":    rec.Name,
		"grade":   rec.Grade,
	})
	return rec, nil
}

func (s *Service) GetActor(ctx context.Context, id uuid.UUID) (models.Actor, error) {
	return s.store.GetActor(ctx, id)
}

// PromoteActor raises the actor's authority one step (grade - 1).
func (s *Service) PromoteActor(ctx context.Context, id uuid.UUID) (models.Actor, error) {
	return s.regrade(ctx, id, "actor.promoted", (*bureau.Actor).Promote)
}

// DemoteActor lowers the actor's authority one step (grade + 1).
func (s *Service) DemoteActor(ctx context.Context, id uuid.UUID) (models.Actor, error) {
	return s.regrade(ctx, id, "actor.demoted", (*bureau.Actor).Demote)
}

func (s *Service) regrade(ctx context.Context, id uuid.UUID, eventType string, step func(*bureau.Actor) error) (models.Actor, error) {
	rec, err := s.store.GetActor(ctx, id)
	if err != nil {
		return models.Actor{}, err
	}
	actor, err := bureau.NewActor(rec.Name, rec.Grade)
	if err != nil {
		return models.Actor{}, fmt.Errorf("stored actor invalid: %w", err)
	}
	if err := step(actor); err != nil {
		return models.Actor{}, err
	}
	updated, err := s.store.UpdateActorGrade(ctx, id, actor.Grade())
	if err != nil {
		return models.Actor{}, err
	}
	s.emit(ctx, eventType, id.String(), map[string]interface{}{
		"actorId": id.String(),
		"grade":   updated.Grade,
	})
	return updated, nil
}

type CreateFormRequest struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// CreateForm builds the variant through the factory, which validates the kind
// key, then persists its fixed thresholds alongside the unsigned flag.
func (s *Service) CreateForm(ctx context.Context, req CreateFormRequest) (models.Form, error) {
	if req.Target == "" {
		return models.Form{}, fmt.Errorf("target required")
	}
	form, err := s.factory.Make(req.Kind, req.Target)
	if err != nil {
		return models.Form{}, err
	}
	rec, err := s.store.CreateForm(ctx, store.FormInput{
		Kind:      form.Kind(),
		Target:    form.Target(),
		SignGrade: form.SignGrade(),
		ExecGrade: form.ExecGrade(),
	})
	if err != nil {
		return models.Form{}, err
	}
	s.emit(ctx, "form.created", rec.ID.String(), map[string]interface{}{
		"formId": rec.ID.String(),
		"kind":   rec.Kind,
		"target": rec.Target,
	})
	return rec, nil
}

func (s *Service) GetForm(ctx context.Context, id uuid.UUID) (models.Form, error) {
	return s.store.GetForm(ctx, id)
}

func (s *Service) ListForms(ctx context.Context, filter store.ListFormsFilter) ([]models.Form, error) {
	return s.store.ListForms(ctx, filter)
}

// SignForm runs the signing check for the given actor against the given form.
// A re-sign by an eligible actor succeeds without touching the store.
func (s *Service) SignForm(ctx context.Context, formID, actorID uuid.UUID) (models.Form, error) {
	frec, arec, actor, form, err := s.rehydrate(ctx, formID, actorID)
	if err != nil {
		return models.Form{}, err
	}
	if err := actor.Sign(form); err != nil {
		return models.Form{}, err
	}
	if frec.Signed {
		return frec, nil
	}
	updated, err := s.store.MarkFormSigned(ctx, formID)
	if err != nil {
		return models.Form{}, err
	}
	s.emit(ctx, "form.signed", formID.String(), map[string]interface{}{
		"formId":  formID.String(),
		"kind":    frec.Kind,
		"actorId": actorID.String(),
		"actor":   arec.Name,
		"grade":   arec.Grade,
	})
	return updated, nil
}

// ExecutionResult carries the persisted form plus the variant's outcome
// message. For robotomy requests the outcome may report failure; that is a
// domain outcome, not an error.
type ExecutionResult struct {
	Form    models.Form `json:"form"`
	Outcome string      `json:"outcome"`
}

func (s *Service) ExecuteForm(ctx context.Context, formID, actorID uuid.UUID) (ExecutionResult, error) {
	frec, arec, actor, form, err := s.rehydrate(ctx, formID, actorID)
	if err != nil {
		return ExecutionResult{}, err
	}
	outcome, err := actor.Execute(ctx, form)
	if err != nil {
		return ExecutionResult{}, err
	}
	s.emit(ctx, "form.executed", formID.String(), map[string]interface{}{
		"formId":  formID.String(),
		"kind":    frec.Kind,
		"actorId": actorID.String(),
		"actor":   arec.Name,
		"grade":   arec.Grade,
		"outcome": outcome,
	})
	return ExecutionResult{Form: frec, Outcome: outcome}, nil
}

func (s *Service) rehydrate(ctx context.Context, formID, actorID uuid.UUID) (models.Form, models.Actor, *bureau.Actor, bureau.Form, error) {
	frec, err := s.store.GetForm(ctx, formID)
	if err != nil {
		return models.Form{}, models.Actor{}, nil, nil, err
	}
	arec, err := s.store.GetActor(ctx, actorID)
	if err != nil {
		return models.Form{}, models.Actor{}, nil, nil, err
	}
	actor, err := bureau.NewActor(arec.Name, arec.Grade)
	if err != nil {
		return models.Form{}, models.Actor{}, nil, nil, fmt.Errorf("stored actor invalid: %w", err)
	}
	form, err := s.factory.Restore(frec.Kind, frec.Target, frec.Signed)
	if err != nil {
		return models.Form{}, models.Actor{}, nil, nil, fmt.Errorf("stored form invalid: %w", err)
	}
	return frec, arec, actor, form, nil
}

// emit never fails the workflow; the state change is already committed. The
// authenticated subject, when the request carried one, is recorded alongside
// the workflow payload.
func (s *Service) emit(ctx context.Context, eventType, key string, payload map[string]interface{}) {
	if s.audit == nil {
		return
	}
	if ai := auth.FromContext(ctx); ai != nil && ai.Subject != "" {
		payload["subject"] = ai.Subject
	}
	ev := audit.Event{EventType: eventType, Key: key, Payload: payload}
	if err := s.audit.Emit(ctx, ev); err != nil {
		log.Printf("audit emit %s: %v", eventType, err)
	}
}
