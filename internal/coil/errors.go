package coil

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for coil synthesis.
var (
	// ErrInfeasible indicates a feasibility inequality failed; no partial
	// geometry is produced.
	ErrInfeasible = errors.New("coil: infeasible geometry")
	// ErrUnsupported indicates a shape/orientation/turn-count combination
	// with no mode mapping.
	ErrUnsupported = errors.New("coil: unsupported configuration")
)

// Param names one offending parameter of a failed feasibility check.
type Param struct {
	Name  string
	Value int
}

// InfeasibleError reports a failed feasibility inequality together with
// the parameters the caller can change to fix it.
type InfeasibleError struct {
	Check  string  // which inequality failed
	Params []Param // offending parameters
	Hint   string  // remedial guidance, e.g. "increase radius_x or decrease term_sp"
}

func (e *InfeasibleError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "coil: %s infeasible", e.Check)
	for i, p := range e.Params {
		if i == 0 {
			sb.WriteString(" (")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%d", p.Name, p.Value)
	}
	if len(e.Params) > 0 {
		sb.WriteString(")")
	}
	if e.Hint != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}

// Unwrap makes the error match errors.Is(err, ErrInfeasible).
func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}
