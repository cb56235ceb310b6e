package runtime

import "github.com/aretw0/mazewalk/pkg/domain"

// Progress describes the traversal of the current maze.
type Progress struct {
	Graph  *domain.Graph
	Cursor domain.Cursor

	// Seconds spent traversing the current maze.
	Seconds float64
	// Waypoints counts the cells reached so far.
	Waypoints int
	// EndReached is set once the camera has arrived at the end cell.
	EndReached bool
}

// HidePredicate decides when the machine leaves PhaseTraversing.
// It is consulted after every traversal tick.
type HidePredicate func(Progress) bool

// NeverHide keeps the camera walking the same maze forever.
func NeverHide(Progress) bool { return false }

// HideAfter hides the maze after the given traversal time.
func HideAfter(seconds float64) HidePredicate {
	return func(p Progress) bool {
		return p.Seconds >= seconds
	}
}

// HideOnEndReached hides the maze once the camera has visited the end cell.
func HideOnEndReached(p Progress) bool {
	return p.EndReached
}

// AnyOf hides as soon as one of the predicates does.
func AnyOf(predicates ...HidePredicate) HidePredicate {
	return func(p Progress) bool {
		for _, pred := range predicates {
			if pred != nil && pred(p) {
				return true
			}
		}
		return false
	}
}
