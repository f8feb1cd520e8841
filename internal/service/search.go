package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sprintingbug/agricheck/internal/model"
	"go.uber.org/zap"
)

// SuggestPlaces fetches place suggestions for a partial query. Upstream
// failures degrade to an empty result list: the suggestion panel is a
// non-critical affordance and never shows an error.
func (s *Service) SuggestPlaces(ctx context.Context, query string) (*model.SuggestResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	records, err := s.suggester.FetchSuggestions(ctx, query)
	if err != nil {
		s.logger.Debug("suggestion fetch failed, degrading to empty list",
			zap.String("query", query),
			zap.Error(err),
		)
		records = nil
	}

	results := make([]model.PlaceSuggestion, 0, len(records))
	for _, record := range records {
		results = append(results, model.NewPlaceSuggestion(record))
	}
	return &model.SuggestResponse{Results: results}, nil
}

// WeatherByKey runs the primary fetch for a resolved place key. Unlike
// suggestions, failures here are surfaced to the caller.
func (s *Service) WeatherByKey(ctx context.Context, key string) (*model.WeatherReport, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyQuery
	}

	report, err := s.fetcher.FetchCurrent(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	return report, nil
}
