package llm

import (
	"context"

	"github.com/foxseedlab/aijukucho/internal/config"
	"github.com/foxseedlab/aijukucho/internal/llm"
	"github.com/foxseedlab/aijukucho/internal/metrics"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (llm.Model, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewGeminiModel(context.Background(), GeminiConfig{
			Backend:         c.GeminiBackend,
			APIKey:          c.GeminiAPIKey,
			Model:           c.GeminiModel,
			ProjectID:       c.GoogleCloudProjectID,
			Location:        c.GoogleCloudLocation,
			CredentialsJSON: c.GoogleCloudCredentialsJSON,
		})
	})
	do.Provide(injector, func(i do.Injector) (*llm.Client, error) {
		model := do.MustInvoke[llm.Model](i)
		recorder := do.MustInvoke[metrics.Recorder](i)
		return llm.NewClient(model, recorder), nil
	})
}
