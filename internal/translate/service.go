package translate

import (
	"context"
	"log/slog"

	"dogtalk/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service handles translate business logic: validation, the upstream call
// and the offline fallback.
type Service struct {
	upstream Generator
	fallback Generator
	guard    *UpstreamGuard
	tracer   trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithUpstream routes translations through gen, guarded by guard. A nil
// guard never throttles.
func WithUpstream(gen Generator, guard *UpstreamGuard) ServiceOption {
	return func(s *Service) {
		s.upstream = gen
		s.guard = guard
	}
}

// WithFallback replaces the default LocalGenerator.
func WithFallback(gen Generator) ServiceOption {
	return func(s *Service) {
		s.fallback = gen
	}
}

// NewService creates a translate service. Without WithUpstream every
// translation is produced locally.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		fallback: NewLocalGenerator(nil),
		tracer:   otel.Tracer("dogtalk/translate"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromConfig builds a service for the configured provider. The local
// provider never calls out; openai goes through an UpstreamGuard.
func NewServiceFromConfig(cfg models.UpstreamConfig) *Service {
	if cfg.Provider != models.ProviderOpenAI {
		return NewService()
	}
	guard := NewUpstreamGuard(cfg.RequestsPerSecond, cfg.Burst)
	return NewService(WithUpstream(NewHTTPGenerator(cfg, nil), guard))
}

// UpstreamEnabled reports whether an upstream generator is configured.
func (s *Service) UpstreamEnabled() bool {
	return s.upstream != nil
}

// Translate produces a translation for req. Only validation failures and a
// failing fallback are returned as errors; upstream problems degrade to the
// local generator.
func (s *Service) Translate(ctx context.Context, req *models.TranslateRequest) (*models.TranslationResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	ctx, span := s.tracer.Start(ctx, "translate.Translate",
		trace.WithAttributes(
			attribute.String("bark.count", req.Count),
			attribute.String("bark.pitch", req.Pitch),
			attribute.String("bark.urgency", req.Urgency),
		),
	)
	defer span.End()

	if s.upstream != nil {
		if s.guard.Allow() {
			text, err := s.upstream.Generate(ctx, req)
			if err == nil {
				span.SetAttributes(attribute.String("translate.source", models.SourceUpstream))
				return &models.TranslationResponse{Translation: text, Source: models.SourceUpstream}, nil
			}
			span.RecordError(err)
			slog.WarnContext(ctx, "Upstream translation failed, using local fallback", "error", err)
		} else {
			span.AddEvent("upstream guard exhausted")
			slog.DebugContext(ctx, "Upstream guard exhausted, using local fallback")
		}
	}

	text, err := s.fallback.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fallback generation failed")
		return nil, NewInternalError("Failed to generate translation", err)
	}

	span.SetAttributes(attribute.String("translate.source", models.SourceLocal))
	return &models.TranslationResponse{Translation: text, Source: models.SourceLocal}, nil
}
