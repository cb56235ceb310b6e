package runtime

import (
	"fmt"
	"math"

	"github.com/aretw0/mazewalk/pkg/domain"
)

const (
	// DefaultMoveSpeed is the translation speed in cells per second.
	DefaultMoveSpeed = 1.6
	// DefaultRotateSpeed is the turn rate in radians per second.
	DefaultRotateSpeed = 0.9 * math.Pi
)

// turnPriority lists the accepted turn angles, most preferred first:
// right-hand side, straight ahead, left-hand side, back.
var turnPriority = [4]float64{math.Pi / 2, 0, -math.Pi / 2, math.Pi}

// Navigator moves a camera through a maze with a right-hand wall follower.
// It never stops: dead ends send it back the way it came, and reaching the
// end cell is not special.
type Navigator struct {
	graph       *domain.Graph
	moveSpeed   float64
	rotateSpeed float64

	pose   domain.Pose
	cursor domain.Cursor
}

// NewNavigator places a camera on the start cell of g, facing the first edge
// of that cell.
func NewNavigator(g *domain.Graph, moveSpeed, rotateSpeed float64) (*Navigator, error) {
	if g == nil || int(g.Start) < 0 || int(g.Start) >= len(g.Cells) {
		return nil, fmt.Errorf("%w: start cell out of bounds", domain.ErrInvalidGraph)
	}
	start := g.Cells[g.Start]
	if len(start.Edges) == 0 {
		return nil, fmt.Errorf("%w: start cell %d has no edges", domain.ErrInvalidGraph, start.Key)
	}

	n := &Navigator{
		graph:       g,
		moveSpeed:   moveSpeed,
		rotateSpeed: rotateSpeed,
	}
	n.cursor = domain.Cursor{
		Previous:  g.Start,
		Target:    start.Edges[0],
		Lookahead: start.Edges[0],
	}
	origin := g.Center(g.Start)
	n.pose = domain.Pose{
		Position: origin,
		Heading:  headingOf(g.Center(n.cursor.Target).Sub(origin)),
	}
	return n, nil
}

// Pose returns the current camera pose.
func (n *Navigator) Pose() domain.Pose { return n.pose }

// Cursor returns the cells the navigator is moving between.
func (n *Navigator) Cursor() domain.Cursor { return n.cursor }

// Graph returns the maze being walked.
func (n *Navigator) Graph() *domain.Graph { return n.graph }

// PickNext chooses the cell to head for after arriving at from out of
// arrivingFrom. It depends on nothing but the graph and its arguments.
func (n *Navigator) PickNext(from, arrivingFrom domain.CellKey) (domain.CellKey, error) {
	return PickNext(n.graph, from, arrivingFrom)
}

// PickNext applies the wall-following rule on g. Among the edges of from it
// prefers the right-hand turn, then straight ahead, then the left-hand turn,
// and finally the way back.
func PickNext(g *domain.Graph, from, arrivingFrom domain.CellKey) (domain.CellKey, error) {
	here := g.Center(from)
	incoming := here.Sub(g.Center(arrivingFrom)).Normalize()

	cell := g.Cells[from]
	angles := make([]float64, len(cell.Edges))
	for i, neighbour := range cell.Edges {
		angle := signedAngle(g.Center(neighbour).Sub(here), incoming)
		if !isTurn(angle) {
			return 0, &TurnAngleError{From: from, ArrivingFrom: arrivingFrom, Neighbor: neighbour, Angle: angle}
		}
		angles[i] = angle
	}

	for _, want := range turnPriority {
		for i, angle := range angles {
			if angle == want {
				return cell.Edges[i], nil
			}
		}
	}
	return 0, fmt.Errorf("%w: cell %d has no edges", domain.ErrInvalidGraph, from)
}

func isTurn(angle float64) bool {
	for _, t := range turnPriority {
		if angle == t {
			return true
		}
	}
	return false
}

// Step advances the camera by elapsed seconds. When the target is within a
// single step the cursor moves one cell forward and the camera stays put for
// this tick; Step then reports true.
func (n *Navigator) Step(elapsed float64) (bool, error) {
	targetPos := n.graph.Center(n.cursor.Target)
	lookPos := n.graph.Center(n.cursor.Lookahead)

	budget := n.moveSpeed * elapsed
	toTarget := targetPos.Sub(n.pose.Position)

	if toTarget.Len() <= budget {
		arrived := n.cursor.Target
		next, err := PickNext(n.graph, arrived, n.cursor.Previous)
		if err != nil {
			return false, err
		}
		look, err := PickNext(n.graph, next, arrived)
		if err != nil {
			return false, err
		}
		n.cursor = domain.Cursor{Previous: arrived, Target: next, Lookahead: look}
		return true, nil
	}

	if toLook := lookPos.Sub(n.pose.Position); toLook.LenSq() > 0 {
		n.pose.Heading = rotateTowards(n.pose.Heading, headingOf(toLook), n.rotateSpeed*elapsed)
	}
	n.pose.Position = n.pose.Position.Add(toTarget.Normalize().Scale(budget))
	return false, nil
}
