package main

import (
	"context"
	"fmt"

	"creator-pricing-workers/internal/api"
	"creator-pricing-workers/internal/common/aws"
	"creator-pricing-workers/internal/common/cache"
	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/config"
	"creator-pricing-workers/internal/common/database"
	commonhttp "creator-pricing-workers/internal/common/http"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/ratelimit"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/brandvet"
	"creator-pricing-workers/internal/signals"

	vb "creator-pricing-workers/internal/workers/brands/vet-brand"
	sn "creator-pricing-workers/internal/workers/communication/send-negotiation"
	sc "creator-pricing-workers/internal/workers/contracts/scan-contract"
	eg "creator-pricing-workers/internal/workers/gifting/evaluate-gift"
	cdq "creator-pricing-workers/internal/workers/pricing/calculate-deal-quality"
	cp "creator-pricing-workers/internal/workers/pricing/calculate-price"
	cqe "creator-pricing-workers/internal/workers/pricing/calculate-quick-estimate"

	"github.com/redis/go-redis/v9"
)

// infrastructure holds the optional backing stores. A nil member means the
// feature that needs it runs without it.
type infrastructure struct {
	redis    *database.RedisClient
	postgres *database.PostgresClient
	elastic  *database.ElasticsearchClient
}

func connectInfrastructure(ctx context.Context, cfg *config.Config, log logger.Logger) (*infrastructure, error) {
	infra := &infrastructure{}
	retry := camunda.RetryConfig{MaxRetries: 10, BaseDelay: camunda.DefaultRetryConfig.BaseDelay, MaxDelay: camunda.DefaultRetryConfig.MaxDelay}

	if cfg.Database.Redis.Address != "" {
		err := camunda.RetryWithBackoff(ctx, retry, log, "Redis connection", func(ctx context.Context) error {
			rc, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				_ = rc.Close()
				return err
			}
			infra.redis = rc
			return nil
		})
		if err != nil {
			return nil, err
		}
		log.Info("Redis connected successfully", nil)
	}

	if cfg.Database.Postgres.Host != "" {
		err := camunda.RetryWithBackoff(ctx, retry, log, "PostgreSQL connection", func(ctx context.Context) error {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				_ = pg.Close()
				return err
			}
			infra.postgres = pg
			return nil
		})
		if err != nil {
			infra.Close()
			return nil, err
		}
		log.Info("PostgreSQL connected successfully", nil)
	}

	if cfg.Database.Elasticsearch.GetURL() != "" {
		err := camunda.RetryWithBackoff(ctx, retry, log, "Elasticsearch connection", func(ctx context.Context) error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			infra.elastic = es
			return nil
		})
		if err != nil {
			infra.Close()
			return nil, err
		}
		log.Info("Elasticsearch connected successfully", nil)
	}

	return infra, nil
}

func (i *infrastructure) Checks() map[string]api.Check {
	checks := map[string]api.Check{}
	if i.redis != nil {
		checks["redis"] = i.redis.Ping
	}
	if i.postgres != nil {
		checks["postgres"] = i.postgres.Ping
	}
	if i.elastic != nil {
		checks["elasticsearch"] = i.elastic.Ping
	}
	return checks
}

func (i *infrastructure) Close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.postgres != nil {
		_ = i.postgres.Close()
	}
}

func (i *infrastructure) redisClient() *redis.Client {
	if i.redis == nil {
		return nil
	}
	return i.redis.Client
}

type dependencies struct {
	vetter    *brandvet.Vetter
	limiter   ratelimit.Limiter
	mailer    sn.Mailer
	sms       sn.SMSSender
	estimator *cqe.Handler
}

func buildDependencies(ctx context.Context, cfg *config.Config, infra *infrastructure, log logger.Logger) (*dependencies, error) {
	deps := &dependencies{}

	store, err := cache.New(cfg.Cache, infra.redisClient())
	if err != nil {
		return nil, fmt.Errorf("brand vet cache: %w", err)
	}
	deps.vetter = brandvet.NewVetter(signalSources(cfg, infra), store, log.WithFields(map[string]interface{}{"component": "brandvet"}))

	if cfg.RateLimit.Enabled {
		deps.limiter, err = ratelimit.New(cfg.RateLimit, infra.redisClient())
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	n := cfg.Notifications
	if n.Email.Enabled || n.SMS.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, n.AWS.Region)
		if err != nil {
			return nil, err
		}
		if n.Email.Enabled {
			deps.mailer = aws.NewSESClient(awsCfg, n.Email.FromEmail)
		}
		if n.SMS.Enabled {
			deps.sms = aws.NewSNSClient(awsCfg, n.SMS.SenderID)
		}
	}
	return deps, nil
}

// signalSources wires a lookup for every backend that is configured. The vetter
// scores unconfigured categories as missing.
func signalSources(cfg *config.Config, infra *infrastructure) brandvet.Sources {
	s := cfg.Signals
	client := commonhttp.NewClient(config.GetDuration(s.Timeout), commonhttp.WithUserAgent(s.Website.UserAgent))

	var sources brandvet.Sources
	sources.Website = signals.NewWebsiteProber(client, s.Website.RDAPBaseURL)
	if s.Social.BaseURL != "" {
		socialClient := commonhttp.NewClient(config.GetDuration(s.Timeout),
			commonhttp.WithUserAgent(s.Website.UserAgent),
			commonhttp.WithHeader("Authorization", bearer(s.Social.APIKey)))
		sources.Social = signals.NewSocialLookup(socialClient, s.Social.BaseURL)
	}
	if infra.postgres != nil {
		sources.History = signals.NewHistoryRepository(infra.postgres.DB)
	}
	if infra.elastic != nil {
		sources.Scam = signals.NewScamReportIndex(infra.elastic.Client, s.ScamIndex.Index)
	}
	return sources
}

func bearer(key string) string {
	if key == "" {
		return ""
	}
	return "Bearer " + key
}

type registration struct {
	taskType string
	handler  camunda.JobHandler
}

func buildHandlers(cfg *config.Config, deps *dependencies, validator *validation.Validator, obs *observability.Observability, log logger.Logger) []registration {
	quickCfg := cqe.DefaultConfig()
	quickCfg.Timeout = workerDuration(cfg, cqe.TaskType, quickCfg.Timeout)
	deps.estimator = cqe.NewHandler(quickCfg, validator, obs, log)

	dealCfg := cdq.DefaultConfig()
	dealCfg.Timeout = workerDuration(cfg, cdq.TaskType, dealCfg.Timeout)

	priceCfg := cp.DefaultConfig()
	priceCfg.Timeout = workerDuration(cfg, cp.TaskType, priceCfg.Timeout)

	giftCfg := eg.DefaultConfig()
	giftCfg.Timeout = workerDuration(cfg, eg.TaskType, giftCfg.Timeout)

	scanCfg := sc.DefaultConfig()
	scanCfg.Timeout = workerDuration(cfg, sc.TaskType, scanCfg.Timeout)

	vetCfg := vb.DefaultConfig()
	vetCfg.Timeout = workerDuration(cfg, vb.TaskType, vetCfg.Timeout)

	sendCfg := sn.DefaultConfig()
	sendCfg.Timeout = workerDuration(cfg, sn.TaskType, sendCfg.Timeout)
	sendCfg.EmailEnabled = cfg.Notifications.Email.Enabled
	sendCfg.SMSEnabled = cfg.Notifications.SMS.Enabled

	return []registration{
		{cqe.TaskType, deps.estimator},
		{cdq.TaskType, cdq.NewHandler(dealCfg, validator, obs, log)},
		{cp.TaskType, cp.NewHandler(priceCfg, validator, obs, log)},
		{eg.TaskType, eg.NewHandler(giftCfg, validator, obs, log)},
		{sc.TaskType, sc.NewHandler(scanCfg, validator, obs, log)},
		{vb.TaskType, vb.NewHandler(vetCfg, deps.vetter, validator, obs, log)},
		{sn.TaskType, sn.NewHandler(sendCfg, deps.mailer, deps.sms, validator, obs, log)},
	}
}
