package server

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/lib/store"
	"github.com/VictoriaMetrics/metrics"
)

// serverMetrics holds the metrics of one server instance.
// They live in their own set so multiple servers in one process do not collide
type serverMetrics struct {
	set      *metrics.Set
	commands *metrics.Counter
	errors   *metrics.Counter
}

func newServerMetrics(s store.IStore) *serverMetrics {
	set := metrics.NewSet()
	set.NewGauge("keyspace_keys", func() float64 {
		return float64(s.Len())
	})
	return &serverMetrics{
		set:      set,
		commands: set.NewCounter("keyspace_commands_total"),
		errors:   set.NewCounter("keyspace_command_errors_total"),
	}
}

// observe records one processed command
func (m *serverMetrics) observe(name string, start time.Time, reply resp.Value) {
	// unknown names are folded to keep the number of series bounded
	if _, ok := commands[name]; !ok {
		name = "unknown"
	}
	name = strings.ToLower(name)

	m.commands.Inc()
	m.set.GetOrCreateCounter(fmt.Sprintf(`keyspace_command_calls_total{cmd=%q}`, name)).Inc()
	m.set.GetOrCreateSummary(fmt.Sprintf(`keyspace_command_duration_seconds{cmd=%q}`, name)).UpdateDuration(start)
	if reply.Sym == resp.SymError {
		m.errors.Inc()
	}
}

// writePrometheus writes the server metrics followed by the process metrics
func (m *serverMetrics) writePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
	metrics.WritePrometheus(w, true)
}
