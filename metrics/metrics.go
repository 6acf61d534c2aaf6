package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const namespace = "orderbook"

// Metrics groups the collectors of one run on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	CommandsTotal          *prometheus.CounterVec
	ConsumedUnitsTotal     *prometheus.CounterVec
	LiquidityErrorsTotal   *prometheus.CounterVec
	MalformedCommandsTotal prometheus.Counter
	PriceLevels            prometheus.Gauge

	logger zerolog.Logger
}

// New registers the collectors; logger reports textfile dumps
func New(logger zerolog.Logger) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		logger:   logger,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "commands_total", Help: "Commands executed by kind",
		}, []string{"command"}),
		ConsumedUnitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "consumed_units_total", Help: "Size removed from the book by orders",
		}, []string{"side"}),
		LiquidityErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "liquidity_errors_total", Help: "Orders that ran out of liquidity",
		}, []string{"side"}),
		MalformedCommandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "malformed_commands_total", Help: "Lines that failed to decode",
		}),
		PriceLevels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "price_levels", Help: "Entries held by the book",
		}),
	}
	m.Registry.MustRegister(
		m.CommandsTotal,
		m.ConsumedUnitsTotal,
		m.LiquidityErrorsTotal,
		m.MalformedCommandsTotal,
		m.PriceLevels,
	)
	return m
}

// WriteTextfile dumps the registry in text exposition format, e.g. for the
// node_exporter textfile collector. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	m.logger.Info().Str("path", path).Msg("metrics written")
	return nil
}
