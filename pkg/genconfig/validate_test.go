package genconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSamplingAndBeamSearchExclusive(t *testing.T) {
	cfg := New()
	cfg.MaxNewTokens = intPtr(10)
	cfg.DoSample = true
	cfg.NumBeams = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "beam search with sampling")
}

func TestValidateZeroMaxNewTokens(t *testing.T) {
	cfg := New()
	cfg.MaxNewTokens = intPtr(0)

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "'max_new_tokens' must be greater than 0")
}

func TestValidateZeroMaxLength(t *testing.T) {
	cfg := New()
	cfg.MaxLength = intPtr(0)
	cfg.EosTokenID = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "'max_length' must be greater than 0")

	// A set max_new_tokens takes priority, so max_length is not checked.
	cfg.MaxNewTokens = intPtr(10)
	assert.NoError(t, cfg.Validate())
}

func TestValidateSamplingDomains(t *testing.T) {
	base := func() *GenerationConfig {
		cfg := New()
		cfg.MaxNewTokens = intPtr(10)
		cfg.DoSample = true
		return cfg
	}

	cfg := base()
	cfg.TopK = 0
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "top_k")

	cfg = base()
	cfg.TopP = 1.5
	err = cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "top_p")

	cfg = base()
	cfg.TopP = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = base()
	cfg.Temperature = 0
	err = cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "temperature")

	// The same values are unconstrained while sampling is disabled.
	cfg = base()
	cfg.DoSample = false
	cfg.TopK = 0
	cfg.TopP = 1.5
	cfg.Temperature = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidateRepetitionPenalty(t *testing.T) {
	// Checked unconditionally, sampling or not.
	cfg := New()
	cfg.MaxNewTokens = intPtr(10)
	cfg.RepetitionPenalty = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "repetition penalty")
}

func TestValidateIgnoreEOSNeedsLengthCap(t *testing.T) {
	cfg := New()
	cfg.IgnoreEOS = true
	cfg.EosTokenID = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ignore_eos")

	cfg.MaxLength = intPtr(100)
	assert.NoError(t, cfg.Validate())
}

func TestValidateNeedsSomeStopSignal(t *testing.T) {
	// No caps and no usable end-of-sequence token: generation would never
	// terminate.
	cfg := New()
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "eos_token_id")

	// Any one signal is enough.
	cfg = New()
	cfg.EosTokenID = 2
	assert.NoError(t, cfg.Validate())

	cfg = New()
	cfg.MaxNewTokens = intPtr(10)
	assert.NoError(t, cfg.Validate())

	cfg = New()
	cfg.MaxLength = intPtr(10)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRuleOrder(t *testing.T) {
	// When several rules are violated the first one in check order surfaces.
	cfg := New()
	cfg.DoSample = true
	cfg.NumBeams = 2
	cfg.MaxNewTokens = intPtr(0)
	cfg.RepetitionPenalty = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "beam search with sampling")

	cfg.NumBeams = 1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'max_new_tokens' must be greater than 0")
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := New()
	cfg.MaxNewTokens = intPtr(10)
	before := cfg.Clone()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, before, cfg)
}
