package domain

import "fmt"

// Phase is the lifecycle stage of the maze currently on display.
type Phase int

const (
	// PhaseRevealing grows the maze from reveal amount 0 to 1.
	PhaseRevealing Phase = iota
	// PhaseTraversing walks the camera through the fully revealed maze.
	PhaseTraversing
	// PhaseHiding shrinks the maze back to 0 before a new one is generated.
	PhaseHiding
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRevealing:
		return "revealing"
	case PhaseTraversing:
		return "traversing"
	case PhaseHiding:
		return "hiding"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < PhaseRevealing || p > PhaseHiding {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "revealing":
		*p = PhaseRevealing
	case "traversing":
		*p = PhaseTraversing
	case "hiding":
		*p = PhaseHiding
	default:
		return fmt.Errorf("unknown phase %q", string(text))
	}
	return nil
}
