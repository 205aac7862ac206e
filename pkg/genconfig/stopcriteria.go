package genconfig

import "fmt"

// StopCriteria controls when beam search may terminate early.
type StopCriteria int

const (
	// StopCriteriaHeuristic stops when further candidates are unlikely to
	// improve on the finished ones. This is the default.
	StopCriteriaHeuristic StopCriteria = iota

	// StopCriteriaNever stops only when no beam can improve anymore.
	StopCriteriaNever

	// StopCriteriaEarly stops as soon as enough candidates are finished.
	StopCriteriaEarly
)

// String returns the lowercase name of the criteria.
func (s StopCriteria) String() string {
	switch s {
	case StopCriteriaHeuristic:
		return "heuristic"
	case StopCriteriaNever:
		return "never"
	case StopCriteriaEarly:
		return "early"
	default:
		return fmt.Sprintf("StopCriteria(%d)", int(s))
	}
}

// ParseStopCriteria maps a criteria name back to its value.
func ParseStopCriteria(name string) (StopCriteria, error) {
	switch name {
	case "heuristic":
		return StopCriteriaHeuristic, nil
	case "never":
		return StopCriteriaNever, nil
	case "early":
		return StopCriteriaEarly, nil
	default:
		return StopCriteriaHeuristic, fmt.Errorf("unknown stop criteria %q", name)
	}
}

// decodeEarlyStopping maps the legacy "early_stopping" field onto a
// StopCriteria. Only three encodings are recognized: the string "never",
// boolean true (early) and boolean false (heuristic). Anything else reports
// no match and the caller keeps its prior value; unrecognized encodings are
// deliberately not an error.
func decodeEarlyStopping(value any) (StopCriteria, bool) {
	switch v := value.(type) {
	case string:
		if v == "never" {
			return StopCriteriaNever, true
		}
	case bool:
		if v {
			return StopCriteriaEarly, true
		}
		return StopCriteriaHeuristic, true
	}
	return StopCriteriaHeuristic, false
}
