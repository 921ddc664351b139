package services

import (
	"fmt"
	"time"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"

	"github.com/rs/zerolog/log"
)

// CSVUploader stores an export file and returns its path and public URL.
type CSVUploader interface {
	UploadCSV(sessionID, filename string, data []byte) (string, string, error)
}

// StorageService archives CSV exports to object storage.
type StorageService struct {
	uploader CSVUploader
	now      func() time.Time
}

// NewStorageService accepts a nil uploader; archiving then reports a
// configuration error.
func NewStorageService(uploader CSVUploader) *StorageService {
	return &StorageService{uploader: uploader, now: time.Now}
}

// WithClock overrides the date used in archive file names.
func (s *StorageService) WithClock(now func() time.Time) *StorageService {
	s.now = now
	return s
}

// ArchiveCSV decodes csv_data and uploads it under the session's folder.
func (s *StorageService) ArchiveCSV(sessionID, csvData string) (*models.ArchiveResponse, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: storage is not configured", models.ErrNotConfigured)
	}

	data, err := report.DecodeCSV(csvData)
	if err != nil {
		return nil, err
	}

	filename := report.CSVFilename(s.now())
	path, url, err := s.uploader.UploadCSV(sessionID, filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	log.Info().Str("session_id", sessionID).Str("path", path).Int("bytes", len(data)).Msg("CSV export archived")
	return &models.ArchiveResponse{Path: path, URL: url}, nil
}
