/*
Package domain contains the core domain models of the mazewalk engine.

It defines the maze graph produced by the generator, the camera pose and
navigation cursor owned by the navigator, and the lifecycle phase owned by the
state machine. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Cell: One grid position, with its potential and generated edges.
  - Graph: The immutable maze (a spanning tree over every cell) plus start, end and detail cells.
  - Pose: The continuous camera position and heading inside the grid.
  - Cursor: The waypoints the navigator moves and turns towards.
  - Snapshot: The per-frame read model handed to renderers and stores.
*/
package domain
