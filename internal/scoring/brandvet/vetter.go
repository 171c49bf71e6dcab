package brandvet

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creator-pricing-workers/internal/common/cache"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"

	"golang.org/x/sync/errgroup"
)

// Lookup collaborators. A source returns (nil, err) when it cannot answer; the
// vetter scores that category as missing instead of failing.

type SocialSource interface {
	LookupSocial(ctx context.Context, in Input) (*SocialSignals, error)
}

type WebsiteSource interface {
	ProbeWebsite(ctx context.Context, in Input) (*WebsiteSignals, error)
}

type HistorySource interface {
	CollaborationHistory(ctx context.Context, in Input) (*HistorySignals, error)
}

type ScamSource interface {
	ScamIndicators(ctx context.Context, in Input) (*ScamSignals, error)
}

// Sources groups the collaborators. Nil members are treated as unavailable.
type Sources struct {
	Social  SocialSource
	Website WebsiteSource
	History HistorySource
	Scam    ScamSource
}

type Vetter struct {
	sources Sources
	store   cache.Store
	logger  logger.Logger
	clock   func() time.Time
}

// NewVetter wires the sources and an optional result cache.
func NewVetter(sources Sources, store cache.Store, log logger.Logger) *Vetter {
	return &Vetter{
		sources: sources,
		store:   store,
		logger:  log,
		clock:   time.Now,
	}
}

// Vet returns the trust assessment for in. Same-day repeats are served from the
// cache with Cached set. A cancelled ctx aborts before any category is scored.
func (v *Vetter) Vet(ctx context.Context, in Input) (Result, error) {
	if err := ValidateInput(in); err != nil {
		return Result{}, err
	}
	key := CacheKey(in)

	if res, ok := v.cached(ctx, key); ok {
		return res, nil
	}

	signals := v.gather(ctx, in)
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("brand vetting cancelled: %w", err)
	}

	res := Score(signals)
	res.BrandName = in.BrandName
	res.Platform = in.Platform
	res.CheckedAt = v.clock().UTC()

	v.remember(ctx, key, res)
	return res, nil
}

func (v *Vetter) cached(ctx context.Context, key string) (Result, bool) {
	if v.store == nil {
		return Result{}, false
	}
	raw, ok, err := v.store.Get(ctx, key)
	if err != nil {
		metrics.BrandVetCacheLookups.WithLabelValues("error").Inc()
		stdErr := errors.NewCacheUnavailableError(err)
		v.logger.Warn("Brand vet cache read failed", map[string]interface{}{
			"key":   key,
			"code":  stdErr.Code,
			"error": stdErr.Details,
		})
		return Result{}, false
	}
	if !ok {
		metrics.BrandVetCacheLookups.WithLabelValues("miss").Inc()
		return Result{}, false
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		metrics.BrandVetCacheLookups.WithLabelValues("error").Inc()
		v.logger.Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = v.store.Evict(ctx, key)
		return Result{}, false
	}
	metrics.BrandVetCacheLookups.WithLabelValues("hit").Inc()
	res.Cached = true
	return res, true
}

func (v *Vetter) remember(ctx context.Context, key string, res Result) {
	if v.store == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := v.store.Set(ctx, key, raw); err != nil {
		stdErr := errors.NewCacheUnavailableError(err)
		v.logger.Warn("Brand vet cache write failed", map[string]interface{}{
			"key":   key,
			"code":  stdErr.Code,
			"error": stdErr.Details,
		})
	}
}

// gather runs every lookup concurrently. Failures leave the matching field nil.
func (v *Vetter) gather(ctx context.Context, in Input) Signals {
	var s Signals
	g, gctx := errgroup.WithContext(ctx)

	if src := v.sources.Social; src != nil {
		g.Go(func() error {
			s.Social = lookup(gctx, v, "social", in, src.LookupSocial)
			return nil
		})
	}
	if src := v.sources.Website; src != nil {
		g.Go(func() error {
			s.Website = lookup(gctx, v, "website", in, src.ProbeWebsite)
			return nil
		})
	}
	if src := v.sources.History; src != nil {
		g.Go(func() error {
			s.History = lookup(gctx, v, "history", in, src.CollaborationHistory)
			return nil
		})
	}
	if src := v.sources.Scam; src != nil {
		g.Go(func() error {
			s.Scam = lookup(gctx, v, "scam", in, src.ScamIndicators)
			return nil
		})
	}

	_ = g.Wait()
	return s
}

func lookup[T any](ctx context.Context, v *Vetter, source string, in Input, fn func(context.Context, Input) (*T, error)) *T {
	out, err := fn(ctx, in)
	if err != nil {
		metrics.BrandVetSignalFailures.WithLabelValues(source).Inc()
		stdErr := errors.NewExternalSignalError(source, err)
		v.logger.Warn("Brand signal lookup failed, scoring as missing", map[string]interface{}{
			"source": source,
			"brand":  in.BrandName,
			"code":   stdErr.Code,
			"error":  stdErr.Details,
		})
		return nil
	}
	return out
}
