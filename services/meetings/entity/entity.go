package entity

import (
	"io"
	"time"
)

type MeetingRecord struct {
	ID          int64
	Filename    string
	Attendees   string
	Transcript  string
	Summary     string
	People      string
	ActionItems string
	CreatedAt   time.Time
}

// MeetingSummary is the listing projection of a MeetingRecord. Summary is
// truncated by the storage layer.
type MeetingSummary struct {
	ID        int64
	Filename  string
	Summary   string
	CreatedAt time.Time
}

// SessionRecord rows are appended by an external writer; this service only
// lists them.
type SessionRecord struct {
	ID        int64
	Context   string
	CreatedAt time.Time
}

type UploadRequest struct {
	Filename string
	File     io.Reader
}

type UploadResponse struct {
	MeetingID int64
	Filename  string
}

// SummaryResult is the parsed output of a summarization call. People is
// reserved and currently always empty.
type SummaryResult struct {
	Summary     string
	People      string
	ActionItems string
}
