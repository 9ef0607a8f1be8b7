// ABOUTME: Prometheus metrics for the web UI
// ABOUTME: Counts store mutations through a subscription and reports the notification badge as a gauge
package web

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/viz"
)

type Metrics struct {
	companiesAdded      prometheus.Counter
	communicationsAdded *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, src viz.Source, classifier *followups.Classifier) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		companiesAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "touchbase",
			Name:      "companies_added_total",
			Help:      "Companies added since the process started.",
		}),
		communicationsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "touchbase",
				Name:      "communications_added_total",
				Help:      "Communications added since the process started.",
			},
			[]string{"completed"},
		),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "touchbase",
		Name:      "notifications",
		Help:      "Companies whose next planned communication is overdue or due today.",
	}, func() float64 {
		count, err := viz.NotificationCount(context.Background(), src, classifier)
		if err != nil {
			log.Warn().Err(err).Msg("failed to compute notification gauge")
			return 0
		}
		return float64(count)
	})

	return m
}

// Attach subscribes the counters to store mutations and returns the unsubscribe func.
func (m *Metrics) Attach(store *db.Store) func() {
	return store.Subscribe(m.Observe)
}

func (m *Metrics) Observe(evt db.Event) {
	switch evt.Kind {
	case db.EventCompanyAdded:
		m.companiesAdded.Inc()
	case db.EventCommunicationAdded:
		m.communicationsAdded.WithLabelValues(strconv.FormatBool(evt.Completed)).Inc()
	}
}
