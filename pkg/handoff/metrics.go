package handoff

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	gscontext "github.com/vnykmshr/gosync/pkg/common/context"
	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
	"github.com/vnykmshr/gosync/pkg/metrics"
)

// MetricsHandoff wraps a Handoff channel with Prometheus metrics collection.
type MetricsHandoff[T any] struct {
	h        *Handoff[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a handoff channel with metrics enabled on a
// dedicated registry.
func NewWithMetrics[T any](name string) *MetricsHandoff[T] {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithConfigAndMetrics[T](DefaultConfig(), name, config)
}

// NewWithConfigAndMetrics creates a handoff channel with custom config and metrics.
func NewWithConfigAndMetrics[T any](config Config, name string, metricsConfig metrics.Config) *MetricsHandoff[T] {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mh := &MetricsHandoff[T]{
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}

	// Chain block callbacks so blocked operations are counted even when the
	// caller supplied its own hooks.
	userBlockPut := config.OnBlockPut
	config.OnBlockPut = func() {
		if mh.enabled {
			registry.HandoffBlockedPuts.WithLabelValues(name).Inc()
		}
		if userBlockPut != nil {
			userBlockPut()
		}
	}
	userBlockTake := config.OnBlockTake
	config.OnBlockTake = func() {
		if mh.enabled {
			registry.HandoffBlockedTakes.WithLabelValues(name).Inc()
		}
		if userBlockTake != nil {
			userBlockTake()
		}
	}

	mh.h = NewWithConfig[T](config)
	return mh
}

// Put delegates to the underlying channel and records metrics.
func (mh *MetricsHandoff[T]) Put(ctx context.Context, value T) error {
	start := time.Now()
	err := mh.h.Put(ctx, value)
	mh.record("put", start, err)
	if err == nil && mh.enabled {
		mh.registry.HandoffPuts.WithLabelValues(mh.name).Inc()
	}
	return err
}

// Take delegates to the underlying channel and records metrics.
func (mh *MetricsHandoff[T]) Take(ctx context.Context) (T, error) {
	start := time.Now()
	value, err := mh.h.Take(ctx)
	mh.record("take", start, err)
	if err == nil && mh.enabled {
		mh.registry.HandoffTakes.WithLabelValues(mh.name).Inc()
	}
	return value, err
}

// TakeWithTimeout is Take with a deadline relative to now.
func (mh *MetricsHandoff[T]) TakeWithTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := gscontext.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return mh.Take(ctx)
}

// TryPut delegates to the underlying channel.
func (mh *MetricsHandoff[T]) TryPut(value T) error {
	err := mh.h.TryPut(value)
	if err == nil && mh.enabled {
		mh.registry.HandoffPuts.WithLabelValues(mh.name).Inc()
		mh.updateOccupied()
	}
	return err
}

// TryTake delegates to the underlying channel.
func (mh *MetricsHandoff[T]) TryTake() (T, bool, error) {
	value, ok, err := mh.h.TryTake()
	if ok && mh.enabled {
		mh.registry.HandoffTakes.WithLabelValues(mh.name).Inc()
		mh.updateOccupied()
	}
	return value, ok, err
}

// Close closes the underlying channel.
func (mh *MetricsHandoff[T]) Close() error {
	return mh.h.Close()
}

// IsClosed reports whether the underlying channel is closed.
func (mh *MetricsHandoff[T]) IsClosed() bool {
	return mh.h.IsClosed()
}

// Occupied reports whether the slot currently holds a value.
func (mh *MetricsHandoff[T]) Occupied() bool {
	return mh.h.Occupied()
}

// Stats returns the underlying channel's counters.
func (mh *MetricsHandoff[T]) Stats() Stats {
	return mh.h.Stats()
}

// EnableMetrics enables metrics collection.
func (mh *MetricsHandoff[T]) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		mh.registry = metrics.NewRegistry(config.Registry)
	}
	mh.enabled = config.Enabled
	return nil
}

// DisableMetrics disables metrics collection.
func (mh *MetricsHandoff[T]) DisableMetrics() {
	mh.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mh *MetricsHandoff[T]) MetricsEnabled() bool {
	return mh.enabled
}

func (mh *MetricsHandoff[T]) record(op string, start time.Time, err error) {
	if !mh.enabled {
		return
	}

	mh.registry.HandoffWaitTime.WithLabelValues(mh.name, op).Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, gserrors.ErrTimeout):
		mh.registry.HandoffTimeouts.WithLabelValues(mh.name, op).Inc()
	case errors.Is(err, gserrors.ErrCanceled):
		mh.registry.HandoffCancels.WithLabelValues(mh.name, op).Inc()
	}
	mh.updateOccupied()
}

func (mh *MetricsHandoff[T]) updateOccupied() {
	occupied := 0.0
	if mh.h.Occupied() {
		occupied = 1.0
	}
	mh.registry.HandoffOccupied.WithLabelValues(mh.name).Set(occupied)
}
