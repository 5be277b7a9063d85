package health

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

const defaultTimeout = 5 * time.Second

// Probe states.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// CheckFunc probes one dependency. It matches the Healthcheck closures
// exposed by the storage backends.
type CheckFunc func(ctx context.Context) error

// Checks maps probe names to check functions.
type Checks map[string]CheckFunc

// Report aggregates the outcome of a readiness probe.
type Report struct {
	Probes map[string]Probe `json:"probes,omitempty"`
	Status string           `json:"status"`
}

// Probe is the outcome of a single check.
type Probe struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures probe execution.
type Option func(*config)

// WithTimeout bounds the combined runtime of all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed probes.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// run executes all checks in parallel under a shared timeout.
func run(ctx context.Context, checks Checks, cfg *config) *Report {
	if len(checks) == 0 {
		return &Report{Status: StatusUp}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		probes = make(map[string]Probe, len(checks))
		failed bool
	)

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()

			probe := Probe{Status: StatusUp}
			if err := check(ctx); err != nil {
				probe.Status = StatusDown
				probe.Error = err.Error()
				cfg.logger.WarnContext(ctx, "readiness probe failed",
					slog.String("probe", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			probes[name] = probe
			if probe.Status == StatusDown {
				failed = true
			}
			mu.Unlock()
		}(name, check)
	}

	wg.Wait()

	status := StatusUp
	if failed {
		status = StatusDown
	}
	return &Report{Status: status, Probes: probes}
}
