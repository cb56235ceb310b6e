package domain

import "errors"

// ErrInvalidDimensions is returned when a grid cannot hold two distinct cells.
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// ErrInvalidGraph is returned when a graph violates the spanning tree invariants.
var ErrInvalidGraph = errors.New("invalid maze graph")

// ErrUnexpectedTurnAngle is returned when a neighbour does not lie straight ahead,
// behind, or at a right angle to the direction of travel.
var ErrUnexpectedTurnAngle = errors.New("unexpected turn angle")

// ErrSnapshotNotFound is returned when a snapshot cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrInvalidConfig is returned when the engine configuration is rejected.
var ErrInvalidConfig = errors.New("invalid configuration")
