/*
Package domain contains the core data model of the easel rendering engine.

It defines the per-frame snapshots handed to host code, the scheduler's own
bookkeeping and the observability events. This package is kept pure and free
of drawing, I/O or transport dependencies, following Hexagonal Architecture
principles.

# Key Entities

  - DrawData: Read-only snapshot of timing, size and theme for one frame.
  - InitData: Snapshot handed to the one-time initialisation hook.
  - FrameState: Frame counter, measured fps and last tick timestamp.
  - LoopState: Debug state machine (idle, running, stepping, break).
  - Evaluation: Policy (all / any / none) used to gate conditional actions.
  - LifecycleHooks: Callbacks for frame, skip and state change events.
*/
package domain
