package preset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/run-bigpig/genconfig/pkg/genconfig"
	"github.com/run-bigpig/genconfig/pkg/interfaces"
	"github.com/run-bigpig/genconfig/pkg/logging"
)

func newChatManager(t *testing.T) *Manager {
	t.Helper()
	manager := NewManager(NewMemoryStore(), WithLogger(logging.NoopLogger{}))

	base := genconfig.New()
	base.MaxNewTokens = intPtr(100)
	base.Temperature = 0.5

	_, err := manager.Save(context.Background(), "chat", base)
	require.NoError(t, err)
	return manager
}

func TestManagerResolve(t *testing.T) {
	manager := newChatManager(t)

	cfg, err := manager.Resolve(context.Background(), "chat", map[string]any{
		"do_sample": true,
		"top_k":     40,
	})
	require.NoError(t, err)

	// Overrides applied, untouched base fields kept.
	assert.True(t, cfg.DoSample)
	assert.Equal(t, 40, cfg.TopK)
	assert.Equal(t, 0.5, cfg.Temperature)
	require.NotNil(t, cfg.MaxNewTokens)
	assert.Equal(t, 100, *cfg.MaxNewTokens)
}

func TestManagerResolveWithoutOverrides(t *testing.T) {
	manager := newChatManager(t)

	cfg, err := manager.Resolve(context.Background(), "chat", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Temperature)
}

func TestManagerResolveLeavesBaseUntouched(t *testing.T) {
	manager := newChatManager(t)
	ctx := context.Background()

	cfg, err := manager.Resolve(ctx, "chat", map[string]any{"temperature": 2.0, "do_sample": true})
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Temperature)

	again, err := manager.Resolve(ctx, "chat", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, again.Temperature)
}

func TestManagerResolveInvalidOverrides(t *testing.T) {
	manager := newChatManager(t)
	ctx := context.Background()

	// Contradictory strategy selection surfaces the validation error.
	_, err := manager.Resolve(ctx, "chat", map[string]any{"do_sample": true, "num_beams": 2})
	assert.ErrorIs(t, err, genconfig.ErrInvalidConfig)

	// Type mismatches surface as field errors.
	_, err = manager.Resolve(ctx, "chat", map[string]any{"temperature": "hot"})
	assert.ErrorIs(t, err, genconfig.ErrFieldType)
}

func TestManagerResolveUnknownPreset(t *testing.T) {
	manager := newChatManager(t)

	_, err := manager.Resolve(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, interfaces.ErrPresetNotFound)
}

func TestManagerSaveRejectsInvalidPreset(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	// No stopping signal at all: must not be storable.
	_, err := manager.Save(context.Background(), "broken", genconfig.New())
	assert.ErrorIs(t, err, genconfig.ErrInvalidConfig)
}
