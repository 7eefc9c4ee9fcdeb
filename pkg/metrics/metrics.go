package metrics

import (
	"sync"

	"github.com/penglongli/gin-metrics/ginmetrics"
)

const (
	AuthFailures     = "auth_failures_total"
	UpstreamRequests = "market_upstream_requests_total"
	SignalsPublished = "signals_published_total"
)

var registerOnce sync.Once

// GetMonitor returns the process monitor serving on path, with the custom
// counters registered.
func GetMonitor(path string) *ginmetrics.Monitor {
	m := ginmetrics.GetMonitor()
	m.SetMetricPath(path)
	m.SetSlowTime(1)
	// used for p95, p99
	m.SetDuration([]float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5})

	Register()
	return m
}

// Register adds the custom counters to the shared monitor. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		m := ginmetrics.GetMonitor()
		for _, metric := range []*ginmetrics.Metric{
			{
				Type:        ginmetrics.Counter,
				Name:        AuthFailures,
				Description: "rejected bearer credentials by reason",
				Labels:      []string{"reason"},
			},
			{
				Type:        ginmetrics.Counter,
				Name:        UpstreamRequests,
				Description: "market data provider calls by asset class and result",
				Labels:      []string{"class", "result"},
			},
			{
				Type:        ginmetrics.Counter,
				Name:        SignalsPublished,
				Description: "trading signals written to the signal feed by result",
				Labels:      []string{"result"},
			},
		} {
			_ = m.AddMetric(metric)
		}
	})
}

// IncAuthFailure counts one rejected credential
func IncAuthFailure(reason string) {
	inc(AuthFailures, reason)
}

// IncUpstream counts one provider call
func IncUpstream(class, result string) {
	inc(UpstreamRequests, class, result)
}

// IncSignalsPublished counts one feed write
func IncSignalsPublished(result string) {
	inc(SignalsPublished, result)
}

// inc is a no-op until Register has run, so packages can count without a monitor.
func inc(name string, labels ...string) {
	_ = ginmetrics.GetMonitor().GetMetric(name).Inc(labels)
}
