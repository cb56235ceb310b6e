package runtime

import (
	"fmt"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// TurnAngleError is returned when an edge leaves a cell at an angle that is
// not a multiple of 90 degrees relative to the direction of travel.
// The graph is corrupt; the navigator cannot recover from it.
type TurnAngleError struct {
	From         domain.CellKey
	ArrivingFrom domain.CellKey
	Neighbor     domain.CellKey
	// Angle is the measured turn in radians.
	Angle float64
}

func (e *TurnAngleError) Error() string {
	return fmt.Sprintf("%v: cell %d entered from %d has neighbour %d at %.4f rad",
		domain.ErrUnexpectedTurnAngle, e.From, e.ArrivingFrom, e.Neighbor, e.Angle)
}

func (e *TurnAngleError) Unwrap() error {
	return domain.ErrUnexpectedTurnAngle
}
