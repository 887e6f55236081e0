package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/singnet/ipfs-provider-go/pkg/metrics"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"github.com/singnet/ipfs-provider-go/pkg/provider"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config describes one discovery run.
type Config struct {
	// Providers in the order they are tried. Nil means provider.Defaults();
	// an empty non-nil slice tries nothing.
	Providers []provider.Provider
	// Options are the global options every provider runs with.
	Options provider.Options
	// Metrics, when set, records probe outcomes.
	Metrics *metrics.Metrics
}

// ErrProviderPanic wraps the value recovered from a provider that panicked.
var ErrProviderPanic = errors.New("provider panicked")

// resolve runs one provider, turning a panic into an error so the scan can
// move on.
func resolve(ctx context.Context, p provider.Provider, opts provider.Options) (res *model.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrProviderPanic, r)
		}
	}()
	return p.Resolve(ctx, opts)
}

// GetIpfs runs the configured providers sequentially and returns the first
// result. Provider errors are logged and absorbed. The only error returned
// is ctx.Err() when ctx ends before a provider succeeds. The returned handle
// belongs to the caller.
func GetIpfs(ctx context.Context, cfg *Config) (*model.Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	providers := cfg.Providers
	if providers == nil {
		providers = provider.Defaults()
	}

	log := logger()
	var absorbed error
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			cfg.Metrics.ObserveResolve(model.Kind("").String())
			return nil, err
		}

		start := time.Now()
		res, err := resolve(ctx, p, cfg.Options)
		elapsed := time.Since(start)

		if err != nil {
			outcome := metrics.OutcomeError
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				outcome = metrics.OutcomeCanceled
			}
			cfg.Metrics.ObserveProbe(p.String(), outcome, elapsed)
			log.Error("provider failed", zap.String("provider", p.String()), zap.Error(err))
			absorbed = multierr.Append(absorbed, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if res == nil {
			cfg.Metrics.ObserveProbe(p.String(), metrics.OutcomeAbsent, elapsed)
			continue
		}

		if res.Provider == "" {
			res.Provider = p.Kind
		}
		cfg.Metrics.ObserveProbe(p.String(), metrics.OutcomeFound, elapsed)
		cfg.Metrics.ObserveResolve(res.Provider.String())
		fields := []zap.Field{zap.String("provider", p.String()), zap.Duration("took", elapsed)}
		if res.APIAddress != nil {
			fields = append(fields, zap.Stringer("addr", res.APIAddress))
		}
		log.Info("found ipfs", fields...)
		return res, nil
	}

	cfg.Metrics.ObserveResolve(model.Kind("").String())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("no ipfs provider succeeded",
		zap.Int("providers", len(providers)),
		zap.Errors("errors", multierr.Errors(absorbed)),
	)
	return nil, nil
}
