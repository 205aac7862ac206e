package preset

import (
	"context"
	"fmt"

	"github.com/run-bigpig/genconfig/pkg/genconfig"
	"github.com/run-bigpig/genconfig/pkg/interfaces"
	"github.com/run-bigpig/genconfig/pkg/logging"
	"github.com/run-bigpig/genconfig/pkg/tracing"
)

// Manager resolves per-request generation configurations from stored base
// presets. Resolution clones the base, overlays the request's overrides and
// validates the result, so a stored preset can never be corrupted by a bad
// request.
type Manager struct {
	store  interfaces.PresetStore
	logger logging.Logger
	tracer *tracing.OTelTracer
}

// ManagerOption represents an option for configuring the manager
type ManagerOption func(*Manager)

// WithLogger sets the logger used by the manager
func WithLogger(logger logging.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTracer sets the tracer used by the manager
func WithTracer(tracer *tracing.OTelTracer) ManagerOption {
	return func(m *Manager) {
		m.tracer = tracer
	}
}

// NewManager creates a manager on top of the given store
func NewManager(store interfaces.PresetStore, options ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NoopLogger{},
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Save validates the configuration and stores it as the named base preset.
// Invalid presets are rejected up front so resolution never starts from a
// broken base.
func (m *Manager) Save(ctx context.Context, name string, cfg *genconfig.GenerationConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("refusing to save preset %q: %w", name, err)
	}

	revision, err := m.store.Save(ctx, name, cfg)
	if err != nil {
		m.logger.Error(ctx, "failed to save preset", map[string]interface{}{
			"preset": name,
			"error":  err.Error(),
		})
		return "", err
	}

	m.logger.Info(ctx, "saved preset", map[string]interface{}{
		"preset":   name,
		"revision": revision,
	})
	return revision, nil
}

// Resolve returns the configuration for one generation request: the named
// base preset with the given overrides overlaid, validated. A nil or empty
// override map resolves the base as-is.
func (m *Manager) Resolve(ctx context.Context, name string, overrides map[string]any) (*genconfig.GenerationConfig, error) {
	var resolveErr error
	if m.tracer != nil {
		spanCtx, span := m.tracer.StartSpan(ctx, "preset.resolve", map[string]string{
			"preset": name,
		})
		ctx = spanCtx
		defer func() { m.tracer.EndSpan(span, resolveErr) }()
	}

	base, err := m.store.Get(ctx, name)
	if err != nil {
		resolveErr = err
		m.logger.Warn(ctx, "failed to load preset", map[string]interface{}{
			"preset": name,
			"error":  err.Error(),
		})
		return nil, err
	}

	cfg := base.Clone()
	if err := cfg.Apply(overrides); err != nil {
		resolveErr = err
		return nil, fmt.Errorf("applying overrides to preset %q: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		resolveErr = err
		m.logger.Warn(ctx, "resolved config failed validation", map[string]interface{}{
			"preset": name,
			"error":  err.Error(),
		})
		return nil, err
	}

	m.logger.Debug(ctx, "resolved config", map[string]interface{}{
		"preset":    name,
		"overrides": len(overrides),
	})
	return cfg, nil
}
