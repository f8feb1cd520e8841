package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sprintingbug/agricheck/internal/model"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// RecordScan stores one scan result for the user. When the request carries no
// disease name, the classifier supplies the label, confidence, and
// recommendations from the image.
func (s *Service) RecordScan(ctx context.Context, userID string, req model.ScanRequest) (*model.Scan, error) {
	scan := &model.Scan{
		ID:              uuid.NewString(),
		UserID:          userID,
		ImagePath:       req.ImagePath,
		DiseaseName:     req.DiseaseName,
		Confidence:      req.Confidence,
		Recommendations: req.Recommendations,
		CreatedAt:       time.Now().UTC(),
	}

	if scan.DiseaseName == "" {
		result := s.classifier.Classify(req.ImagePath)
		scan.DiseaseName = result.DiseaseName
		scan.Confidence = result.Confidence
		if scan.Recommendations == nil {
			rec := result.Recommendations
			scan.Recommendations = &rec
		}
	}

	if err := s.scanRepo.CreateScan(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to store scan: %w", err)
	}
	return scan, nil
}

// ScanHistory lists the user's scans, newest first.
func (s *Service) ScanHistory(ctx context.Context, userID string, limit, offset int) (*model.ScanHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	scans, err := s.scanRepo.ListScansByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	total, err := s.scanRepo.CountScansByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}

	if scans == nil {
		scans = []model.Scan{}
	}
	return &model.ScanHistoryResponse{Scans: scans, Total: total}, nil
}

// GetScan fetches one scan, scoped to its owner.
func (s *Service) GetScan(ctx context.Context, userID, scanID string) (*model.Scan, error) {
	scan, err := s.scanRepo.GetScanByID(ctx, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	if scan == nil || scan.UserID != userID {
		return nil, ErrNotFound
	}
	return scan, nil
}
