package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"crimewatch/api/internal/ids"
	"crimewatch/api/internal/media/sniffer"
	"crimewatch/api/internal/storage"
)

// Evidence uploads are capped well above typical phone-camera output.
const maxEvidenceBytes = 10 << 20

var ErrUnsupportedEvidence = errors.New("evidence must be a jpeg, png, or webp image")

type EvidenceService struct {
	crimes CrimeStore
	store  *storage.ObjectStore
	log    zerolog.Logger
}

func NewEvidenceService(crimes CrimeStore, store *storage.ObjectStore, log zerolog.Logger) *EvidenceService {
	return &EvidenceService{crimes: crimes, store: store, log: log}
}

// Attach stores a photo against an existing crime report and returns the
// object key.
func (s *EvidenceService) Attach(ctx context.Context, crimeID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if _, err := s.crimes.GetByID(ctx, crimeID); err != nil {
		return "", err
	}

	if header.Size > maxEvidenceBytes {
		return "", fmt.Errorf("evidence exceeds %d bytes", maxEvidenceBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxEvidenceBytes+1))
	if err != nil {
		return "", fmt.Errorf("read evidence: %w", err)
	}
	if len(data) > maxEvidenceBytes {
		return "", fmt.Errorf("evidence exceeds %d bytes", maxEvidenceBytes)
	}

	result, err := sniffer.DetectHead(data)
	if err != nil {
		return "", ErrUnsupportedEvidence
	}

	key := fmt.Sprintf("%s/%s.%s", crimeID, ids.New(), result.Type)
	if err := s.store.PutEvidence(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return "", err
	}

	s.log.Info().
		Str("crime_id", crimeID).
		Str("key", key).
		Int("size_bytes", len(data)).
		Msg("evidence stored")

	return key, nil
}

// DownloadURL returns a short-lived link for a stored evidence object.
func (s *EvidenceService) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.store.PresignEvidence(ctx, key, 15*time.Minute)
}
