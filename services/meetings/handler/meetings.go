package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meetscribe/backend/pkg/json"
)

type MeetingListItem struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type MeetingDetail struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	Transcript  string    `json:"transcript"`
	Summary     string    `json:"summary"`
	ActionItems string    `json:"action_items"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.usecase.ListMeetings(r.Context())
	if err != nil {
		h.log.Error("failed to list meetings", slog.String("error", err.Error()))
		writeUsecaseError(w, err)
		return
	}

	items := make([]MeetingListItem, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, MeetingListItem{
			ID:        m.ID,
			Filename:  m.Filename,
			Summary:   m.Summary,
			CreatedAt: m.CreatedAt,
		})
	}

	json.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "meetingID"), 10, 64)
	if err != nil {
		h.log.Warn("invalid meeting id", slog.String("raw", chi.URLParam(r, "meetingID")))
		json.WriteError(w, http.StatusBadRequest, fmt.Errorf("invalid meeting id"))
		return
	}

	rec, err := h.usecase.GetMeeting(r.Context(), id)
	if err != nil {
		h.log.Error("failed to get meeting",
			slog.Int64("meeting_id", id),
			slog.String("error", err.Error()))
		writeUsecaseError(w, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, MeetingDetail{
		ID:          rec.ID,
		Filename:    rec.Filename,
		Transcript:  rec.Transcript,
		Summary:     rec.Summary,
		ActionItems: rec.ActionItems,
		CreatedAt:   rec.CreatedAt,
	})
}
