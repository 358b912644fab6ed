/*
Package observability turns the engine's lifecycle hooks into metrics and
logs.

Metrics registers Prometheus collectors for produced frames, skipped ticks,
the measured fps, frame durations and the debug loop state. LogHooks writes
the same events to a structured logger, sampling frames so a 60 fps loop
does not flood the output. Both return domain.LifecycleHooks that can be
merged and passed to easel.WithLifecycleHooks.
*/
package observability
