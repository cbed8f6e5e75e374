package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/render"
)

// HealthServiceImpl implements HealthService
type HealthServiceImpl struct {
	client Classifier
	logger *log.Logger
}

// NewHealthService creates a new health service
func NewHealthService(client Classifier, logger *log.Logger) *HealthServiceImpl {
	return &HealthServiceImpl{client: client, logger: logger}
}

// Check queries the API status endpoint
func (s *HealthServiceImpl) Check(ctx context.Context) (*classifier.Health, error) {
	h, err := s.client.Health(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("health check failed: %v", err)
		}
		return nil, err
	}
	return h, nil
}

// Summary returns a one line status for the status bar
func (s *HealthServiceImpl) Summary(ctx context.Context) string {
	h, err := s.Check(ctx)
	if err != nil {
		return "API indisponível"
	}
	return FormatHealth(h)
}

// FormatHealth renders a health report as one line
func FormatHealth(h *classifier.Health) string {
	state := "online"
	if !h.Healthy() {
		state = h.Status
	}
	line := fmt.Sprintf("API %s", state)
	if h.Version != "" {
		line += " v" + h.Version
	}
	if h.AIProvider != "" {
		line += fmt.Sprintf(" | IA: %s", h.AIProvider)
		if h.GroqStatus != "" {
			line += fmt.Sprintf(" (%s)", h.GroqStatus)
		}
	}
	if h.MaxFileSizeMB > 0 {
		line += " | Limite: " + render.FormatFileSize(int64(h.MaxFileSizeMB*1024*1024))
	}
	return line
}
