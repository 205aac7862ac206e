package genconfig

import "fmt"

// Validate checks the cross-field invariants and returns an error wrapping
// ErrInvalidConfig for the first violated rule. It never mutates the
// configuration. The decoding engine must not run with a configuration that
// failed validation: a failure means the decoding strategy is ambiguous or no
// finite stopping condition exists.
func (c *GenerationConfig) Validate() error {
	// Sampling and beam search are mutually exclusive, so the three decoding
	// modes partition the space for every config that passes this check.
	if c.DoSample && c.NumBeams != 1 {
		return invalid("beam search with sampling is not supported: " +
			"either set do_sample=false to use beam search " +
			"or set num_beams=1 to use multinomial sampling")
	}

	if c.MaxNewTokens != nil && *c.MaxNewTokens == 0 {
		return invalid("'max_new_tokens' must be greater than 0")
	}

	// max_new_tokens has priority over max_length, so max_length is only
	// checked when max_new_tokens is absent.
	if c.MaxNewTokens == nil && c.MaxLength != nil && *c.MaxLength == 0 {
		return invalid("'max_length' must be greater than 0 or 'max_new_tokens' should be defined")
	}

	if c.DoSample && c.TopK <= 0 {
		return invalid("top_k must be strictly positive, but got %d", c.TopK)
	}
	if c.DoSample && (c.TopP <= 0 || c.TopP > 1.0) {
		return invalid("top_p must be a positive float > 0 and <= 1, but got %g", c.TopP)
	}
	if c.DoSample && c.Temperature <= 0 {
		return invalid("temperature must be a strictly positive float, but got %g", c.Temperature)
	}

	if c.RepetitionPenalty <= 0 {
		return invalid("repetition penalty must be a strictly positive float, but got %g", c.RepetitionPenalty)
	}

	if c.IgnoreEOS && c.MaxNewTokens == nil && c.MaxLength == nil {
		return invalid("ignore_eos is true, so either 'max_new_tokens' or 'max_length' should be defined")
	}

	if c.EosTokenID == NoEosToken && c.MaxNewTokens == nil && c.MaxLength == nil {
		return invalid("either 'eos_token_id', 'max_new_tokens' or 'max_length' should be defined")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
