package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/formbureau/formdesk/internal/auth"
	"github.com/formbureau/formdesk/internal/bureau"
	"github.com/formbureau/formdesk/internal/config"
	"github.com/formbureau/formdesk/internal/service"
	"github.com/formbureau/formdesk/internal/store"
)

type Server struct {
	cfg     config.Config
	service *service.Service
	store   store.Store
}

func New(cfg config.Config, svc *service.Service, st store.Store) *Server {
	return &Server{cfg: cfg, service: svc, store: st}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/bureau", func(r chi.Router) {
		r.Get("/actors/{id}", s.handleGetActor)
		r.Get("/forms", s.handleListForms)
		r.Get("/forms/{id}", s.handleGetForm)

		r.Group(func(r chi.Router) {
			r.Use(auth.NewMiddleware(auth.Config{
				JWTSecret:       s.cfg.JWTSecret,
				AllowDebugToken: s.cfg.AllowDebugToken,
				DebugToken:      s.cfg.DebugToken,
			}))
			r.Post("/actors", s.handleCreateActor)
			r.Post("/actors/{id}/promote", s.handlePromoteActor)
			r.Post("/actors/{id}/demote", s.handleDemoteActor)
			r.Post("/forms", s.handleCreateForm)
			r.Post("/forms/{id}/sign", s.handleSignForm)
			r.Post("/forms/{id}/execute", s.handleExecuteForm)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	status := map[string]interface{}{
		"ok":   true,
		"time": time.Now().UTC(),
	}
	if err := s.store.Ping(ctx); err != nil {
		status["ok"] = false
		status["db"] = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type createActorRequest struct {
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

func (s *Server) handleCreateActor(w http.ResponseWriter, r *http.Request) {
	var req createActorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	actor, err := s.service.CreateActor(r.Context(), service.CreateActorRequest{
		Name:  req.Name,
		Grade: req.Grade,
	})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, actor)
}

func (s *Server) handleGetActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor, err := s.service.GetActor(r.Context(), id)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

func (s *Server) handlePromoteActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor, err := s.service.PromoteActor(r.Context(), id)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

func (s *Server) handleDemoteActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor, err := s.service.DemoteActor(r.Context(), id)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

type createFormRequest struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var req createFormRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	form, err := s.service.CreateForm(r.Context(), service.CreateFormRequest{
		Kind:   req.Kind,
		Target: req.Target,
	})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, form)
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	form, err := s.service.GetForm(r.Context(), id)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, form)
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ListFormsFilter{Kind: q.Get("kind")}
	if v := q.Get("signed"); v != "" {
		signed := v == "true"
		filter.Signed = &signed
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}
	forms, err := s.service.ListForms(r.Context(), filter)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, forms)
}

type actorRef struct {
	ActorID string `json:"actorId"`
}

func (s *Server) handleSignForm(w http.ResponseWriter, r *http.Request) {
	formID, actorID, ok := parseFormAndActor(w, r)
	if !ok {
		return
	}
	form, err := s.service.SignForm(r.Context(), formID, actorID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, form)
}

func (s *Server) handleExecuteForm(w http.ResponseWriter, r *http.Request) {
	formID, actorID, ok := parseFormAndActor(w, r)
	if !ok {
		return
	}
	result, err := s.service.ExecuteForm(r.Context(), formID, actorID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func parseFormAndActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	formID, ok := parseID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	var ref actorRef
	if err := decodeJSON(w, r, &ref); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	actorID, err := uuid.Parse(ref.ActorID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid actorId")
		return uuid.Nil, uuid.Nil, false
	}
	return formID, actorID, true
}

// statusForError maps workflow errors onto HTTP statuses. Domain errors come
// through untranslated from the bureau package, so errors.Is works across
// layers.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bureau.ErrFormNotFound):
		return http.StatusBadRequest
	case errors.Is(err, bureau.ErrGradeTooHigh), errors.Is(err, bureau.ErrGradeTooLow):
		return http.StatusForbidden
	case errors.Is(err, bureau.ErrFormNotSigned):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
