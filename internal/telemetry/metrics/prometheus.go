package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info and runtime metrics collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
	)

	return promRegistry
}

// LogSnapshot writes every gathered metric family with the fitpro prefix to
// the debug log. Used by the CLI on exit, where there is no scrape endpoint.
func LogSnapshot(gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		log.Errorf("gather metrics: %s", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				log.Debugf("metric %s %v = %v", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				log.Debugf("metric %s %v = %v", mf.GetName(), labels, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				log.Debugf("metric %s %v count=%d sum=%v", mf.GetName(), labels,
					m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}
}
