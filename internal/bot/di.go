package bot

import (
	"github.com/foxseedlab/aijukucho/internal/config"
	"github.com/foxseedlab/aijukucho/internal/history"
	"github.com/foxseedlab/aijukucho/internal/llm"
	"github.com/foxseedlab/aijukucho/internal/metrics"
	"github.com/foxseedlab/aijukucho/internal/repository"
	"github.com/foxseedlab/aijukucho/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Router, error) {
		cfg := do.MustInvoke[*config.Config](i)
		fetcher := do.MustInvoke[*history.Fetcher](i)
		llmClient := do.MustInvoke[*llm.Client](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		recorder := do.MustInvoke[metrics.Recorder](i)
		return NewRouter(cfg, fetcher, llmClient, repo, wh, recorder), nil
	})
}
