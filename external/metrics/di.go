package metrics

import (
	"github.com/foxseedlab/aijukucho/internal/config"
	"github.com/foxseedlab/aijukucho/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		return reg, nil
	})
	do.Provide(injector, func(i do.Injector) (metrics.Recorder, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.MetricsAddr == "" {
			return metrics.Nop{}, nil
		}
		reg := do.MustInvoke[*prometheus.Registry](i)
		return NewPrometheusRecorder(reg), nil
	})
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*prometheus.Registry](i)
		return NewServer(cfg.MetricsAddr, reg), nil
	})
}
