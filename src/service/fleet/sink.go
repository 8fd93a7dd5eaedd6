package fleet

import (
	"context"
	"fmt"

	"sustainabot/src/config"
	"sustainabot/src/util"
)

// NewSink builds the sink selected by cfg.Sink.
// The returned close function is never nil.
func NewSink(ctx context.Context, cfg config.FleetConfig) (Sink, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Sink {
	case "", "memory":
		util.Debug("Using in-memory shared context")
		return NewContext(), noop, nil
	case "file":
		util.Debug("Using file shared context: %s", cfg.File)
		sink, err := NewFileSink(cfg.File)
		if err != nil {
			return nil, noop, err
		}
		return sink, noop, nil
	case "http":
		util.Debug("Using remote shared context: %s", cfg.URL)
		return NewClient(cfg), noop, nil
	case "postgres":
		util.Debug("Using postgres shared context")
		sink, err := NewPostgresSink(ctx, cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return sink, sink.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown fleet sink: %s", cfg.Sink)
	}
}
