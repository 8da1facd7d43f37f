package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/meetings/entity"
	"github.com/meetscribe/backend/services/meetings/storage"
	"github.com/meetscribe/backend/services/meetings/usecase"
)

type Handler struct {
	usecase usecase.Usecase
	storage storage.Storage
	log     *slog.Logger
}

func New(usc usecase.Usecase, stg storage.Storage, log *slog.Logger) *Handler {
	return &Handler{
		usecase: usc,
		storage: stg,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/upload", h.Upload)
	api.Route("/meetings", func(r chi.Router) {
		r.Get("/list", h.ListMeetings)
		r.Get("/{meetingID}", h.GetMeeting)
	})
	api.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
	})
	api.Get("/health", h.HealthCheck)
	h.log.Info("all routes registered")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Health(r.Context()); err != nil {
		h.log.Error("storage health check failed", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusServiceUnavailable, err)
		return
	}
	json.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}

// writeUsecaseError maps the error taxonomy onto HTTP statuses: validation
// problems are the caller's fault, an unknown id is a 404, everything else is
// a server-side fault.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		json.WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrMeetingNotFound):
		json.WriteError(w, http.StatusNotFound, err)
	default:
		json.WriteError(w, http.StatusInternalServerError, err)
	}
}
