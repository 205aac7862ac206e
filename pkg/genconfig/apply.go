package genconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fieldSetters maps external field names to typed handlers. A handler
// overwrites its field from the source value or reports a type mismatch;
// keys absent from a source are simply never visited, which is what gives
// the layered overlay its "absent leaves prior value" semantics.
var fieldSetters = map[string]func(*GenerationConfig, any) error{
	"max_new_tokens": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("max_new_tokens", v)
		}
		c.MaxNewTokens = &n
		return nil
	},
	"max_length": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("max_length", v)
		}
		c.MaxLength = &n
		return nil
	},
	"ignore_eos": func(c *GenerationConfig, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeError("ignore_eos", v)
		}
		c.IgnoreEOS = b
		return nil
	},
	"num_beam_groups": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("num_beam_groups", v)
		}
		c.NumBeamGroups = n
		return nil
	},
	"num_beams": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("num_beams", v)
		}
		c.NumBeams = n
		return nil
	},
	"diversity_penalty": func(c *GenerationConfig, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("diversity_penalty", v)
		}
		c.DiversityPenalty = f
		return nil
	},
	"length_penalty": func(c *GenerationConfig, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("length_penalty", v)
		}
		c.LengthPenalty = f
		return nil
	},
	"num_return_sequences": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("num_return_sequences", v)
		}
		c.NumReturnSequences = n
		return nil
	},
	"no_repeat_ngram_size": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("no_repeat_ngram_size", v)
		}
		c.NoRepeatNgramSize = n
		return nil
	},
	"stop_criteria": func(c *GenerationConfig, v any) error {
		switch sc := v.(type) {
		case StopCriteria:
			c.StopCriteria = sc
			return nil
		case string:
			parsed, err := ParseStopCriteria(sc)
			if err != nil {
				return typeError("stop_criteria", v)
			}
			c.StopCriteria = parsed
			return nil
		default:
			return typeError("stop_criteria", v)
		}
	},
	// Legacy alias for stop_criteria. Only three encodings are mapped and
	// anything else keeps the prior value without erroring.
	"early_stopping": func(c *GenerationConfig, v any) error {
		if sc, ok := decodeEarlyStopping(v); ok {
			c.StopCriteria = sc
		}
		return nil
	},
	"temperature": func(c *GenerationConfig, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("temperature", v)
		}
		c.Temperature = f
		return nil
	},
	"top_p": func(c *GenerationConfig, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("top_p", v)
		}
		c.TopP = f
		return nil
	},
	"top_k": func(c *GenerationConfig, v any) error {
		n, ok := toCount(v)
		if !ok {
			return typeError("top_k", v)
		}
		c.TopK = n
		return nil
	},
	"do_sample": func(c *GenerationConfig, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeError("do_sample", v)
		}
		c.DoSample = b
		return nil
	},
	"repetition_penalty": func(c *GenerationConfig, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("repetition_penalty", v)
		}
		c.RepetitionPenalty = f
		return nil
	},
	"eos_token_id": func(c *GenerationConfig, v any) error {
		n, ok := toInt(v)
		if !ok {
			return typeError("eos_token_id", v)
		}
		c.EosTokenID = n
		return nil
	},
}

// Apply overlays the given parameters onto the configuration. Every
// recognized key present in the map overwrites its field; absent keys leave
// the current value untouched; unrecognized keys are ignored so newer sources
// keep working against older binaries. A recognized key carrying an
// incompatible value returns an error wrapping ErrFieldType.
func (c *GenerationConfig) Apply(params map[string]any) error {
	for key, value := range params {
		setter, ok := fieldSetters[key]
		if !ok {
			continue
		}
		if err := setter(c, value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyFile overlays parameters read from a JSON or YAML file onto the
// configuration. Files ending in .yaml or .yml are parsed as YAML, anything
// else as JSON. An unopenable file returns an error wrapping
// ErrSourceUnavailable with the attempted path; an unparseable one wraps
// ErrSourceMalformed.
func (c *GenerationConfig) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to open %q: %v", ErrSourceUnavailable, path, err)
	}

	params := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("%w: failed to parse %q: %v", ErrSourceMalformed, path, err)
		}
	default:
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("%w: failed to parse %q: %v", ErrSourceMalformed, path, err)
		}
	}

	return c.Apply(params)
}

// FromFile builds a configuration from defaults overlaid with the given file.
func FromFile(path string) (*GenerationConfig, error) {
	c := New()
	if err := c.ApplyFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

func typeError(field string, value any) error {
	return fmt.Errorf("%w: field %q cannot take %T value %v", ErrFieldType, field, value, value)
}

// toInt accepts any integral source value. JSON decodes numbers as float64,
// so floats with an integral value are accepted too.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// toCount is toInt restricted to non-negative values, for fields with
// unsigned semantics.
func toCount(v any) (int, bool) {
	n, ok := toInt(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int32:
		return float64(f), true
	case int64:
		return float64(f), true
	case uint:
		return float64(f), true
	case uint64:
		return float64(f), true
	default:
		return 0, false
	}
}
