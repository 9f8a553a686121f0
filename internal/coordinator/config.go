package coordinator

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dreamware/rcoord/internal/nodeclient"
)

// Defaults for the coordinator's tunable knobs.
const (
	DefaultUpdateSlotWait = 500 * time.Millisecond
	DefaultMinReplicas    = 1
	DefaultCloseWait      = 10000 * time.Millisecond
)

// Config holds the coordinator's immutable-after-init knobs. It is built
// either through functional Options (the idiomatic Go entry point) or
// through ParseOptions, a dynamic-map validation path for callers bridging
// from a config map.
type Config struct {
	Observers      []Observer
	UpdateSlotWait time.Duration
	ClientOpts     map[string]any
	MinReplicas    int
	CloseWait      time.Duration
	Dialer         nodeclient.Dialer
	Logger         zerolog.Logger
	Metrics        *Metrics
}

func defaultConfig() Config {
	return Config{
		UpdateSlotWait: DefaultUpdateSlotWait,
		MinReplicas:    DefaultMinReplicas,
		CloseWait:      DefaultCloseWait,
		Dialer:         nodeclient.DialRESP,
		Logger:         zerolog.Nop(),
	}
}

// Option configures a Config. Unlike ParseOptions's dynamic map, invalid
// Option values are caught by the Go compiler — there is no "unknown key"
// failure mode here.
type Option func(*Config)

// WithObservers registers event subscribers.
func WithObservers(observers ...Observer) Option {
	return func(c *Config) { c.Observers = append(c.Observers, observers...) }
}

// WithUpdateSlotWait sets the interval between refresh attempts while NOK.
func WithUpdateSlotWait(d time.Duration) Option {
	return func(c *Config) { c.UpdateSlotWait = d }
}

// WithClientOpts sets opaque options forwarded to every per-node client.
func WithClientOpts(opts map[string]any) Option {
	return func(c *Config) { c.ClientOpts = opts }
}

// WithMinReplicas sets the minimum replica count per master for health.
func WithMinReplicas(n int) Option {
	return func(c *Config) { c.MinReplicas = n }
}

// WithCloseWait sets the grace period before closing removed clients.
func WithCloseWait(d time.Duration) Option {
	return func(c *Config) { c.CloseWait = d }
}

// WithDialer overrides how per-node clients are opened. Tests use this to
// inject nodeclient.FakeClient in place of a real RESP connection.
func WithDialer(d nodeclient.Dialer) Option {
	return func(c *Config) { c.Dialer = d }
}

// WithLogger sets the zerolog.Logger the actor logs through.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetricsRegistry enables Prometheus instrumentation, registering
// the coordinator's gauges and counters on reg under namespace.
func WithMetricsRegistry(reg prometheus.Registerer, namespace string) Option {
	return func(c *Config) { c.Metrics = NewMetrics(reg, namespace) }
}

// recognizedOptionKeys is the set of keys ParseOptions accepts.
var recognizedOptionKeys = map[string]bool{
	"info_pid":         true,
	"update_slot_wait": true,
	"client_opts":      true,
	"min_replicas":     true,
	"close_wait":       true,
	"dialer":           true,
	"logger":           true,
}

// ParseOptions validates and applies a dynamic option map. Unknown keys fail with
// ErrInvalidOption; recognized keys are type-checked and applied over the
// defaults.
func ParseOptions(raw map[string]any) (Config, error) {
	cfg := defaultConfig()
	for k, v := range raw {
		if !recognizedOptionKeys[k] {
			return Config{}, fmt.Errorf("%w: unknown option %q", ErrInvalidOption, k)
		}
		if err := applyRawOption(&cfg, k, v); err != nil {
			return Config{}, fmt.Errorf("%w: option %q: %v", ErrInvalidOption, k, err)
		}
	}
	return cfg, nil
}

func applyRawOption(cfg *Config, key string, v any) error {
	switch key {
	case "info_pid":
		observers, ok := v.([]Observer)
		if !ok {
			return fmt.Errorf("expected []Observer, got %T", v)
		}
		cfg.Observers = observers
	case "update_slot_wait":
		d, err := asDuration(v)
		if err != nil {
			return err
		}
		cfg.UpdateSlotWait = d
	case "client_opts":
		opts, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("expected map[string]any, got %T", v)
		}
		cfg.ClientOpts = opts
	case "min_replicas":
		n, err := asInt(v)
		if err != nil {
			return err
		}
		cfg.MinReplicas = n
	case "close_wait":
		d, err := asDuration(v)
		if err != nil {
			return err
		}
		cfg.CloseWait = d
	case "dialer":
		d, ok := v.(nodeclient.Dialer)
		if !ok {
			return fmt.Errorf("expected nodeclient.Dialer, got %T", v)
		}
		cfg.Dialer = d
	case "logger":
		l, ok := v.(zerolog.Logger)
		if !ok {
			return fmt.Errorf("expected zerolog.Logger, got %T", v)
		}
		cfg.Logger = l
	}
	return nil
}

func asDuration(v any) (time.Duration, error) {
	switch n := v.(type) {
	case time.Duration:
		return n, nil
	case int:
		return time.Duration(n) * time.Millisecond, nil
	case int64:
		return time.Duration(n) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("expected duration or milliseconds, got %T", v)
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected int, got %T", v)
	}
}
