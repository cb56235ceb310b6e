/*
Package ports defines the driven ports (interfaces) for the mazewalk engine.

These interfaces decouple the engine loop from external implementations, so the
same runner can publish frames to memory, Redis, a terminal or an HTTP feed.

# Key Interfaces

  - Engine: The tickable core driven by a host loop.
  - SnapshotStore: Publishes the latest frame of a session for other readers.
  - FrameSink: Presents each frame (terminal, renderer bridge).
  - DistributedLocker: Keeps a single writer per session across replicas.
*/
package ports
