package usecase

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/meetscribe/backend/services/meetings/entity"
)

var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// validateUpload checks the upload request and returns the sanitized filename
// the file will be stored under.
func validateUpload(req *entity.UploadRequest) (string, error) {
	if req == nil || req.File == nil {
		return "", &entity.ValidationError{Reason: "audio file is required"}
	}
	if req.Filename == "" {
		return "", &entity.ValidationError{Reason: "filename must not be empty"}
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", &entity.ValidationError{Reason: "unsupported audio format, allowed: mp3, wav, m4a, flac, ogg"}
	}

	filename := sanitizeFilename(req.Filename)
	if filename == "" {
		return "", &entity.ValidationError{Reason: "filename contains no usable characters"}
	}

	return filename, nil
}

// sanitizeFilename strips path components and replaces characters unsafe for
// the local filesystem.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	return name
}
