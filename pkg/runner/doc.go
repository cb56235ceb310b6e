/*
Package runner implements the host loop for the mazewalk engine.

It acts as the bridge between the engine and the outside world. The runner owns
the clock: it measures wall time between frames, ticks the engine, publishes
snapshots to a store for concurrent readers and hands each frame to a sink.

# Key Components

  - Runner: The frame loop, driven by a time.Ticker.
  - Step: One iteration of the loop, for tests and hosts with their own clock.

# Usage

	r := runner.NewRunner(
		runner.WithStore(memory.NewStore()),
		runner.WithSessionID("lobby"),
		runner.WithInterval(time.Second/60),
	)

	if err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}
*/
package runner
