package prometheus

import (
	"net/http"

	"github.com/pngfun/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler serves the runtime metrics of the process together with the
// request and job metrics declared in common. Each handler owns its registry,
// so it can be created more than once in a process.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	for _, c := range appCollectors() {
		registry.MustRegister(c)
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry:          registry,
		EnableOpenMetrics: true,
	})
}

func appCollectors() []prometheus.Collector {
	result := make([]prometheus.Collector, 0, len(common.PromCounters)+len(common.PromHistograms))
	for _, counter := range common.PromCounters {
		result = append(result, counter)
	}

	for _, histogram := range common.PromHistograms {
		result = append(result, histogram)
	}

	return result
}
