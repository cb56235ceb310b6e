/*
Package observability provides tools for monitoring the mazewalk engine.

It includes lifecycle hooks that log phase changes and new mazes, a metrics
Recorder with a Prometheus implementation, and the HTTP handler that exposes it.
*/
package observability
