package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/meetscribe/backend/pkg/json"
)

type SessionItem struct {
	ID        int64     `json:"id"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.usecase.ListSessions(r.Context())
	if err != nil {
		h.log.Error("failed to list sessions", slog.String("error", err.Error()))
		writeUsecaseError(w, err)
		return
	}

	items := make([]SessionItem, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, SessionItem{
			ID:        s.ID,
			Context:   s.Context,
			CreatedAt: s.CreatedAt,
		})
	}

	json.WriteJSON(w, http.StatusOK, items)
}
