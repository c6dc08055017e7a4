package history

import (
	"github.com/foxseedlab/aijukucho/internal/config"
	"github.com/foxseedlab/aijukucho/internal/discord"
	"github.com/foxseedlab/aijukucho/internal/metrics"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		dc := do.MustInvoke[discord.Client](i)
		recorder := do.MustInvoke[metrics.Recorder](i)
		return NewFetcher(dc, recorder, cfg.HistoryMaxPages), nil
	})
}
