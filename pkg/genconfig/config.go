// Package genconfig holds the generation-control configuration consumed by a
// text-decoding engine: which decoding strategy runs (greedy, beam search or
// multinomial sampling), with what parameters, and when generation must stop.
//
// A GenerationConfig is built once per generation request by layering sources
// (defaults, then an optional config file, then runtime overrides), validated
// once, and then read without further mutation for the lifetime of that
// request.
package genconfig

import "math"

// TopKDisabled is the top_k value meaning "consider the whole vocabulary".
const TopKDisabled = math.MaxInt

// NoEosToken is the eos_token_id value meaning no end-of-sequence token is known.
const NoEosToken = -1

// GenerationConfig contains all decoding-control parameters for one
// generation request. MaxNewTokens and MaxLength are nil when no cap was
// specified.
type GenerationConfig struct {
	// MaxNewTokens caps the number of tokens generated beyond the prompt.
	MaxNewTokens *int `json:"max_new_tokens,omitempty" yaml:"max_new_tokens,omitempty"`

	// MaxLength caps prompt length plus generated length. MaxNewTokens has
	// priority when both are set.
	MaxLength *int `json:"max_length,omitempty" yaml:"max_length,omitempty"`

	// IgnoreEOS keeps generation running past the end-of-sequence token.
	IgnoreEOS bool `json:"ignore_eos" yaml:"ignore_eos"`

	// NumBeamGroups is the diverse-beam-search group count.
	NumBeamGroups int `json:"num_beam_groups" yaml:"num_beam_groups"`

	// NumBeams is the beam width; a value above 1 selects beam search.
	NumBeams int `json:"num_beams" yaml:"num_beams"`

	// DiversityPenalty is subtracted across beam groups in diverse beam search.
	DiversityPenalty float64 `json:"diversity_penalty" yaml:"diversity_penalty"`

	// LengthPenalty is the beam-search length normalization exponent.
	LengthPenalty float64 `json:"length_penalty" yaml:"length_penalty"`

	// NumReturnSequences is the number of sequences returned to the caller.
	NumReturnSequences int `json:"num_return_sequences" yaml:"num_return_sequences"`

	// NoRepeatNgramSize forbids repeating n-grams of this size (0 disables).
	NoRepeatNgramSize int `json:"no_repeat_ngram_size" yaml:"no_repeat_ngram_size"`

	// StopCriteria governs early termination of beam search.
	StopCriteria StopCriteria `json:"stop_criteria" yaml:"stop_criteria"`

	// Temperature is the sampling softmax temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopP is the nucleus-sampling cumulative-probability cutoff in (0, 1].
	TopP float64 `json:"top_p" yaml:"top_p"`

	// TopK is the top-k sampling cutoff; TopKDisabled means no cutoff.
	TopK int `json:"top_k" yaml:"top_k"`

	// DoSample enables multinomial sampling.
	DoSample bool `json:"do_sample" yaml:"do_sample"`

	// RepetitionPenalty down-weights previously generated tokens.
	RepetitionPenalty float64 `json:"repetition_penalty" yaml:"repetition_penalty"`

	// EosTokenID is the end-of-sequence token id, or NoEosToken.
	EosTokenID int `json:"eos_token_id" yaml:"eos_token_id"`
}

// New returns a GenerationConfig with default values: greedy decoding, no
// length caps, no end-of-sequence token.
func New() *GenerationConfig {
	return &GenerationConfig{
		NumBeamGroups:      1,
		NumBeams:           1,
		LengthPenalty:      1.0,
		NumReturnSequences: 1,
		StopCriteria:       StopCriteriaHeuristic,
		Temperature:        1.0,
		TopP:               1.0,
		TopK:               TopKDisabled,
		RepetitionPenalty:  1.0,
		EosTokenID:         NoEosToken,
	}
}

// Clone returns a deep copy of the configuration. Stored base configurations
// are cloned before per-request overrides are applied so the base is never
// mutated.
func (c *GenerationConfig) Clone() *GenerationConfig {
	clone := *c
	if c.MaxNewTokens != nil {
		v := *c.MaxNewTokens
		clone.MaxNewTokens = &v
	}
	if c.MaxLength != nil {
		v := *c.MaxLength
		clone.MaxLength = &v
	}
	return &clone
}

// NewTokenBudget returns the number of tokens the engine may generate for a
// prompt of the given length. MaxNewTokens always wins when set; otherwise
// the budget is what remains of MaxLength after the prompt. A prompt already
// at or past MaxLength yields 0 rather than underflowing. With neither cap
// set the budget is unbounded (validation guarantees an end-of-sequence token
// exists in that case).
func (c *GenerationConfig) NewTokenBudget(promptLen int) int {
	if c.MaxNewTokens != nil {
		return *c.MaxNewTokens
	}
	if c.MaxLength == nil {
		return math.MaxInt
	}
	if promptLen >= *c.MaxLength {
		return 0
	}
	return *c.MaxLength - promptLen
}

// IsGreedy reports whether greedy decoding applies: sampling disabled and a
// beam width of 1.
func (c *GenerationConfig) IsGreedy() bool {
	return !c.DoSample && !c.IsBeamSearch()
}

// IsBeamSearch reports whether beam search applies (beam width above 1).
func (c *GenerationConfig) IsBeamSearch() bool {
	return c.NumBeams > 1
}

// IsMultinomial reports whether multinomial sampling applies.
func (c *GenerationConfig) IsMultinomial() bool {
	return c.DoSample
}
