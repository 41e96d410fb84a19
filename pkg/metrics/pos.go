package metrics

import "github.com/prometheus/client_golang/prometheus"

// POSMetrics tracks till activity.
type POSMetrics struct {
	checkouts  prometheus.Counter
	revenue    prometheus.Counter
	itemsSold  prometheus.Counter
	rejections *prometheus.CounterVec
	mirror     *prometheus.CounterVec
}

// NewPOSMetrics registers the till metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Committed checkouts.",
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_minor_units_total",
		Help:      "Sum of checkout totals in minor currency units.",
	})
	itemsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_sold_total",
		Help:      "Units sold across all checkouts.",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_rejections_total",
		Help:      "Engine operations rejected with a domain error.",
	}, []string{"operation", "code"})
	mirror := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_saves_total",
		Help:      "Snapshot writes to the persistence mirror.",
	}, []string{"result"})
	reg.MustRegister(checkouts, revenue, itemsSold, rejections, mirror)
	return &POSMetrics{
		checkouts:  checkouts,
		revenue:    revenue,
		itemsSold:  itemsSold,
		rejections: rejections,
		mirror:     mirror,
	}
}

// ObserveCheckout records a committed sale.
func (m *POSMetrics) ObserveCheckout(total int64, items int) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
	m.revenue.Add(float64(total))
	m.itemsSold.Add(float64(items))
}

// IncRejection counts an operation that failed with the given error code.
func (m *POSMetrics) IncRejection(operation, code string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

// ObserveMirrorSave counts a snapshot write by outcome.
func (m *POSMetrics) ObserveMirrorSave(err error) {
	if m == nil || m.mirror == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.mirror.WithLabelValues(result).Inc()
}
