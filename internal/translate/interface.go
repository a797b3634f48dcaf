package translate

import (
	"context"

	"dogtalk/internal/models"
)

// ServiceInterface defines the interface for translate service operations
type ServiceInterface interface {
	// Translate turns a normalized bark description into text for the typewriter
	Translate(ctx context.Context, req *models.TranslateRequest) (*models.TranslationResponse, error)
}

// Generator produces a translation for a request. HTTPGenerator calls the
// paid provider; LocalGenerator assembles one offline.
type Generator interface {
	Generate(ctx context.Context, req *models.TranslateRequest) (string, error)
}

// Ensure implementations satisfy their interfaces
var (
	_ ServiceInterface = (*Service)(nil)
	_ Generator        = (*HTTPGenerator)(nil)
	_ Generator        = (*LocalGenerator)(nil)
)
