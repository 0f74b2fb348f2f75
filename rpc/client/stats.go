package client

import (
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
)

const (
	timerPrefix  = "cmd."
	errorsMetric = "errors"
)

// CommandStats summarizes the latency of one command name
type CommandStats struct {
	Count int64
	Rate1 float64 // per second, one minute moving average
	Mean  time.Duration
	P99   time.Duration
}

// Stats is a snapshot of the client side metrics of an executor
type Stats struct {
	Commands map[string]CommandStats
	Errors   int64
}

func (e *executor) Stats() Stats {
	stats := Stats{
		Commands: make(map[string]CommandStats),
		Errors:   e.errors.Count(),
	}

	e.registry.Each(func(name string, i interface{}) {
		timer, ok := i.(metrics.Timer)
		if !ok || !strings.HasPrefix(name, timerPrefix) {
			return
		}
		snapshot := timer.Snapshot()
		stats.Commands[strings.TrimPrefix(name, timerPrefix)] = CommandStats{
			Count: snapshot.Count(),
			Rate1: snapshot.Rate1(),
			Mean:  time.Duration(snapshot.Mean()),
			P99:   time.Duration(snapshot.Percentile(0.99)),
		}
	})
	return stats
}
