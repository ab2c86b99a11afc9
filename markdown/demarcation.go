package markdown

import "fmt"

// Demarcation is the policy for marking or splitting output at page
// boundaries.
type Demarcation int

const (
	// DemarcationNone ignores page boundaries entirely.
	DemarcationNone Demarcation = iota
	// DemarcationRule emits a horizontal rule and a page-number marker
	// line at each page boundary.
	DemarcationRule
	// DemarcationSplit yields one output string per page instead of a
	// single concatenation.
	DemarcationSplit
)

func (d Demarcation) String() string {
	switch d {
	case DemarcationRule:
		return "rule"
	case DemarcationSplit:
		return "split"
	default:
		return "none"
	}
}

// ParseDemarcation parses a demarcation policy name as accepted on the
// command line: "none", "rule", or "split".
func ParseDemarcation(s string) (Demarcation, error) {
	switch s {
	case "", "none":
		return DemarcationNone, nil
	case "rule":
		return DemarcationRule, nil
	case "split":
		return DemarcationSplit, nil
	default:
		return DemarcationNone, fmt.Errorf("unknown page demarcation %q (want none, rule, or split)", s)
	}
}
