/*
Package mazewalk generates perfect mazes and drives a camera that explores them forever.

Each maze is a spanning tree over a rectangular grid of cells. A wall-following
navigator walks it with a fixed right-hand rule, while a lifecycle machine loops
the maze through reveal, traversal, hide and regeneration.

# Concept

The engine owns no clock and no goroutine. The host ("Runner") calls Tick with
the elapsed wall time once per frame and reads a Snapshot back: the graph, the
camera pose, the waypoint cursor, the phase and the reveal amount. Renderers,
HTTP feeds and agents consume snapshots; they never reach into the engine.

# Key Features

  - Deterministic Generation: a fixed seed yields the same maze and the same walk.
  - Renderer Agnostic: the read model carries no mesh, texture or viewport data.
  - Pluggable Lifecycle: hide predicates decide when a traversal ends.
  - Observability: lifecycle hooks report phase changes, waypoints and new mazes.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/mazewalk"
	)

	func main() {
		eng, err := mazewalk.New(
			mazewalk.WithDimensions(20, 20),
			mazewalk.WithSeed(42),
			mazewalk.WithHidePredicate(mazewalk.HideAfter(60)),
		)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		for range 600 {
			if err := eng.Tick(ctx, 1.0/60); err != nil {
				log.Fatal(err)
			}
		}

		snap := eng.Snapshot()
		log.Printf("phase=%s reveal=%.2f pos=%v", snap.Phase, snap.RevealAmount, snap.Pose.Position)
	}
*/
package mazewalk
