package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/meetings/entity"
)

type UploadResponse struct {
	Success   bool   `json:"success"`
	MeetingID int64  `json:"meeting_id"`
	Message   string `json:"message"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	h.log.Info("upload request received",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("user_agent", r.UserAgent()))

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.log.Warn("upload without audio form field", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusBadRequest, fmt.Errorf("audio file is required"))
		return
	}
	defer file.Close()

	h.log.Debug("processing upload",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	resp, err := h.usecase.Upload(r.Context(), &entity.UploadRequest{
		Filename: header.Filename,
		File:     file,
	})
	if err != nil {
		h.log.Error("upload failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		writeUsecaseError(w, err)
		return
	}

	h.log.Info("upload processed",
		slog.Int64("meeting_id", resp.MeetingID),
		slog.String("filename", resp.Filename))

	json.WriteJSON(w, http.StatusOK, UploadResponse{
		Success:   true,
		MeetingID: resp.MeetingID,
		Message:   fmt.Sprintf("Meeting %q transcribed successfully.", resp.Filename),
	})
}
