/*
Package domain contains the shared data model of the blockflow engine.

It defines the value trees exchanged between blocks, the snapshots emitted while a
simulation runs and the lifecycle hooks used to observe it. This package is kept
pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Values: a mapping from field name to value; nested mappings mirror composite schemas.
  - Snapshot: the record of one block invocation inside a time step.
  - LifecycleHooks: callbacks fired around time steps and block invocations.
*/
package domain
