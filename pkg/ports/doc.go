/*
Package ports defines the driven ports (interfaces) of the easel engine.

These interfaces decouple the scheduler and pipelines from concrete drawing
backends and time sources, so the core can run against a gg canvas, an
in-memory recorder or a test double.

# Key Interfaces

  - Surface: The drawable target that draw and filter actions mutate.
  - Readiness: Optional; lets a surface report that it cannot be drawn on yet.
  - FrameSource: Delivers the "run again before the next paint" callbacks.
  - Clock: Injectable time source for deterministic fps measurement.
*/
package ports
