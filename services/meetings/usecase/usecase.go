package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/meetings/entity"
	"github.com/meetscribe/backend/services/meetings/storage"
)

// Provider is the external AI capability the orchestrator depends on. Tests
// substitute a deterministic stub.
type Provider interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
	Summarize(ctx context.Context, transcript string) (*entity.SummaryResult, error)
}

type Usecase interface {
	Upload(ctx context.Context, req *entity.UploadRequest) (*entity.UploadResponse, error)
	GetMeeting(ctx context.Context, id int64) (*entity.MeetingRecord, error)
	ListMeetings(ctx context.Context) ([]entity.MeetingSummary, error)
	ListSessions(ctx context.Context) ([]entity.SessionRecord, error)
}

type usecase struct {
	storage   storage.Storage
	provider  Provider
	uploadDir string
	uploadID  gen.UUIDGenerator
}

func New(stg storage.Storage, provider Provider, uploadDir string) Usecase {
	return &usecase{
		storage:   stg,
		provider:  provider,
		uploadDir: uploadDir,
		uploadID:  gen.UUID(),
	}
}

// Upload runs the pipeline for one audio file: validate, persist the file,
// transcribe, summarize, store the record. Transcription failure aborts the
// request; summarization failure degrades to empty summary fields.
func (u *usecase) Upload(ctx context.Context, req *entity.UploadRequest) (*entity.UploadResponse, error) {
	log := logger.FromContext(ctx).With(slog.String("upload_id", u.uploadID.Next().String()))

	filename, err := validateUpload(req)
	if err != nil {
		return nil, err
	}

	savePath, err := u.saveFile(filename, req.File)
	if err != nil {
		return nil, err
	}
	log.Info("audio file saved", slog.String("path", savePath))

	transcript, err := u.provider.Transcribe(ctx, savePath)
	if err != nil {
		log.Error("transcription failed", slog.String("error", err.Error()))
		return nil, err
	}

	result, err := u.provider.Summarize(ctx, transcript)
	if err != nil {
		// Partial success: the transcript alone is still worth keeping.
		log.Warn("summarization failed, storing transcript without summary",
			slog.String("error", err.Error()))
		result = &entity.SummaryResult{}
	}

	rec := &entity.MeetingRecord{
		Filename:    filename,
		Attendees:   "",
		Transcript:  transcript,
		Summary:     result.Summary,
		People:      result.People,
		ActionItems: result.ActionItems,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := u.storage.SaveMeeting(ctx, rec)
	if err != nil {
		log.Error("failed to save meeting record", slog.String("error", err.Error()))
		return nil, err
	}
	log.Info("meeting record created", slog.Int64("meeting_id", id))

	return &entity.UploadResponse{
		MeetingID: id,
		Filename:  filename,
	}, nil
}

// saveFile writes the upload under the sanitized filename. Two uploads with
// the same name race at this step and the last write wins; acceptable for a
// low-traffic single-tenant deployment.
func (u *usecase) saveFile(filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(u.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	savePath := filepath.Join(u.uploadDir, filename)
	dst, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return savePath, nil
}

func (u *usecase) GetMeeting(ctx context.Context, id int64) (*entity.MeetingRecord, error) {
	return u.storage.GetMeeting(ctx, id)
}

func (u *usecase) ListMeetings(ctx context.Context) ([]entity.MeetingSummary, error) {
	return u.storage.ListMeetings(ctx)
}

func (u *usecase) ListSessions(ctx context.Context) ([]entity.SessionRecord, error) {
	return u.storage.ListSessions(ctx)
}
