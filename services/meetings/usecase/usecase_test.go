package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/meetings/clients/genai"
	"github.com/meetscribe/backend/services/meetings/entity"
	"github.com/meetscribe/backend/services/meetings/storage"
)

type stubProvider struct {
	transcribeFn func(ctx context.Context, filePath string) (string, error)
	summarizeFn  func(ctx context.Context, transcript string) (*entity.SummaryResult, error)
}

func (s *stubProvider) Transcribe(ctx context.Context, filePath string) (string, error) {
	return s.transcribeFn(ctx, filePath)
}

func (s *stubProvider) Summarize(ctx context.Context, transcript string) (*entity.SummaryResult, error) {
	return s.summarizeFn(ctx, transcript)
}

func workingProvider() *stubProvider {
	return &stubProvider{
		transcribeFn: func(ctx context.Context, filePath string) (string, error) {
			return "Hello team...", nil
		},
		summarizeFn: func(ctx context.Context, transcript string) (*entity.SummaryResult, error) {
			raw := "SUMMARY: discussed X\nACTION_ITEMS: follow up with Y"
			return &entity.SummaryResult{
				Summary:     genai.ExtractSection(raw, genai.HeaderSummary),
				People:      "",
				ActionItems: genai.ExtractSection(raw, genai.HeaderActionItems),
			}, nil
		},
	}
}

func newTestUsecase(t *testing.T, provider Provider) (Usecase, storage.Storage, string) {
	t.Helper()
	dir := t.TempDir()
	stg, err := storage.Open(filepath.Join(dir, "meetings.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { stg.Close() })

	uploadDir := filepath.Join(dir, "uploads")
	return New(stg, provider, uploadDir), stg, uploadDir
}

func upload(filename, content string) *entity.UploadRequest {
	return &entity.UploadRequest{
		Filename: filename,
		File:     bytes.NewReader([]byte(content)),
	}
}

func meetingCount(t *testing.T, stg storage.Storage) int {
	t.Helper()
	meetings, err := stg.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("ListMeetings: %v", err)
	}
	return len(meetings)
}

func TestUploadScenario(t *testing.T) {
	usc, stg, uploadDir := newTestUsecase(t, workingProvider())

	resp, err := usc.Upload(context.Background(), upload("meeting1.mp3", "audio bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resp.MeetingID == 0 {
		t.Fatal("expected a meeting id")
	}
	if resp.Filename != "meeting1.mp3" {
		t.Errorf("filename = %q, want meeting1.mp3", resp.Filename)
	}

	rec, err := usc.GetMeeting(context.Background(), resp.MeetingID)
	if err != nil {
		t.Fatalf("GetMeeting: %v", err)
	}
	if rec.Transcript != "Hello team..." {
		t.Errorf("transcript = %q", rec.Transcript)
	}
	if rec.Summary != "discussed X" {
		t.Errorf("summary = %q, want discussed X", rec.Summary)
	}
	if rec.ActionItems != "follow up with Y" {
		t.Errorf("action items = %q, want follow up with Y", rec.ActionItems)
	}
	if rec.People != "" {
		t.Errorf("people must be empty, got %q", rec.People)
	}

	saved, err := os.ReadFile(filepath.Join(uploadDir, "meeting1.mp3"))
	if err != nil {
		t.Fatalf("uploaded file not written: %v", err)
	}
	if string(saved) != "audio bytes" {
		t.Errorf("saved file content = %q", saved)
	}

	if got := meetingCount(t, stg); got != 1 {
		t.Errorf("expected 1 record, got %d", got)
	}
}

func TestUploadValidation(t *testing.T) {
	var cases = []struct {
		name string
		req  *entity.UploadRequest
	}{
		{"no file", &entity.UploadRequest{Filename: "a.mp3"}},
		{"empty filename", upload("", "data")},
		{"no extension", upload("meeting", "data")},
		{"disallowed extension", upload("meeting.txt", "data")},
		{"pdf", upload("slides.pdf", "data")},
		{"double extension trick", upload("evil.mp3.exe", "data")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			usc, stg, uploadDir := newTestUsecase(t, workingProvider())

			_, err := usc.Upload(context.Background(), tc.req)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			if got := meetingCount(t, stg); got != 0 {
				t.Errorf("validation failure must not create records, got %d", got)
			}
			if _, err := os.Stat(uploadDir); !os.IsNotExist(err) {
				t.Errorf("validation failure must not write files")
			}
		})
	}
}

func TestUploadAcceptsAllowedExtensionsAnyCase(t *testing.T) {
	for _, name := range []string{"a.mp3", "b.WAV", "c.M4a", "d.flac", "e.OGG"} {
		t.Run(name, func(t *testing.T) {
			usc, _, _ := newTestUsecase(t, workingProvider())
			if _, err := usc.Upload(context.Background(), upload(name, "data")); err != nil {
				t.Fatalf("Upload(%s): %v", name, err)
			}
		})
	}
}

func TestUploadTranscriptionFailureAborts(t *testing.T) {
	provider := workingProvider()
	provider.transcribeFn = func(ctx context.Context, filePath string) (string, error) {
		return "", &entity.TranscriptionError{Err: errors.New("quota exceeded")}
	}
	usc, stg, _ := newTestUsecase(t, provider)

	_, err := usc.Upload(context.Background(), upload("meeting1.mp3", "data"))
	var tErr *entity.TranscriptionError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}

	if got := meetingCount(t, stg); got != 0 {
		t.Errorf("transcription failure must not create records, got %d", got)
	}
}

func TestUploadWithoutCredentialAborts(t *testing.T) {
	provider := workingProvider()
	provider.transcribeFn = func(ctx context.Context, filePath string) (string, error) {
		return "", entity.ErrProviderUnavailable
	}
	usc, stg, _ := newTestUsecase(t, provider)

	_, err := usc.Upload(context.Background(), upload("meeting1.mp3", "data"))
	if !errors.Is(err, entity.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if got := meetingCount(t, stg); got != 0 {
		t.Errorf("expected no records, got %d", got)
	}
}

func TestUploadSummarizationFailureDegrades(t *testing.T) {
	provider := workingProvider()
	provider.summarizeFn = func(ctx context.Context, transcript string) (*entity.SummaryResult, error) {
		return nil, &entity.SummarizationError{Err: errors.New("model overloaded")}
	}
	usc, _, _ := newTestUsecase(t, provider)

	resp, err := usc.Upload(context.Background(), upload("meeting1.mp3", "data"))
	if err != nil {
		t.Fatalf("summarization failure must not abort the upload: %v", err)
	}

	rec, err := usc.GetMeeting(context.Background(), resp.MeetingID)
	if err != nil {
		t.Fatalf("GetMeeting: %v", err)
	}
	if rec.Transcript == "" {
		t.Error("transcript must be populated")
	}
	if rec.Summary != "" || rec.ActionItems != "" || rec.People != "" {
		t.Errorf("summary fields must be empty on partial failure, got %q, %q, %q",
			rec.Summary, rec.ActionItems, rec.People)
	}
}

func TestUploadLogsToContextLogger(t *testing.T) {
	usc, _, _ := newTestUsecase(t, workingProvider())

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := logger.WithContext(context.Background(), log)

	if _, err := usc.Upload(ctx, upload("meeting1.mp3", "data")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "upload_id=") {
		t.Errorf("expected upload correlation id in log output, got %q", out)
	}
	if !strings.Contains(out, "meeting record created") {
		t.Errorf("expected record creation log line, got %q", out)
	}
}

func TestSanitizeFilename(t *testing.T) {
	var cases = []struct {
		in   string
		want string
	}{
		{"meeting1.mp3", "meeting1.mp3"},
		{"../../etc/passwd.mp3", "passwd.mp3"},
		{"my meeting notes.mp3", "my_meeting_notes.mp3"},
		{"weird$chars%here!.wav", "weird_chars_here_.wav"},
		{".hidden.mp3", "hidden.mp3"},
		{"...", ""},
	}

	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
