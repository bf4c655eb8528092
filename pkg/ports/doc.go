/*
Package ports defines the interfaces between the blockflow engine and its adapters.

Progress reporting is the only outward channel of a simulation: the engine hands one
domain.Snapshot per block invocation to a Recorder. Adapters in pkg/adapters provide
in-memory and Redis implementations, and RunRecorderContract verifies any of them.
*/
package ports
