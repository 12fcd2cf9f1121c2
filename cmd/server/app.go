package main

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/qrcode-service/go/configs"
	"github.com/avatarctic/qrcode-service/go/internal/application/services"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/bolt"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/digest"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/health"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/memory"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/metrics"
	qrrender "github.com/avatarctic/qrcode-service/go/internal/infrastructure/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/redis"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/serializer"
)

// app holds the long-lived dependencies shared by serve and render.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	memoizer *services.Memoizer
	checkers []ports.HealthChecker
	// textClient is set for the redis backend and reused for rate limiting.
	textClient *goredis.Client
	closers    []func() error
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger, reg prometheus.Registerer) (*app, error) {
	ser, err := serializer.ByName(cfg.Cache.Serializer)
	if err != nil {
		return nil, err
	}
	dig, err := digest.ByName(cfg.Cache.KeyDigest)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	store, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	var memoizer *services.Memoizer
	if store != nil {
		memoizer = services.NewMemoizer(store, services.MemoizerConfig{
			TTL:        cfg.Cache.TTL,
			Serializer: ser,
			Digest:     dig,
			Logger:     logger,
			Recorder:   metrics.NewCacheMetrics(reg),
		})
	}
	a.memoizer = memoizer

	logger.WithFields(logrus.Fields{
		"backend":    cfg.Cache.Backend,
		"ttl":        cfg.Cache.TTL.String(),
		"digest":     cfg.Cache.KeyDigest,
		"serializer": cfg.Cache.Serializer,
	}).Info("cache configured")
	return a, nil
}

func (a *app) openStore(ctx context.Context) (ports.DualChannelStore, error) {
	switch strings.ToLower(a.cfg.Cache.Backend) {
	case "redis":
		binary := redis.NewRedisClient(&a.cfg.Redis)
		text := redis.NewRedisClient(&a.cfg.Redis)
		a.textClient = text
		a.closers = append(a.closers, binary.Close, text.Close)
		if err := redis.Ping(ctx, binary); err != nil {
			// Keep going: every lookup fails open until Redis comes back.
			a.logger.WithError(err).Warn("Redis unreachable at startup; serving uncached")
		}
		a.checkers = append(a.checkers,
			health.NewRedisHealthChecker("redis_binary", binary),
			health.NewRedisHealthChecker("redis_text", text),
		)
		return redis.NewDualChannelCache(binary, text, a.cfg.Cache.KeyPrefix, a.cfg.Cache.OpTimeout), nil
	case "bolt":
		store, err := bolt.Open(a.cfg.Cache.BoltPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		a.checkers = append(a.checkers, store)
		return store, nil
	case "memory":
		return memory.New(), nil
	case "none", "":
		return nil, nil
	default:
		return nil, errors.Newf("unknown cache backend %q", a.cfg.Cache.Backend)
	}
}

func (a *app) qrCodeService() ports.QRCodeService {
	return services.NewQRCodeService(qrrender.NewRenderer(), a.memoizer, a.logger)
}

// rateLimitClient returns the Redis client rate limit counters live in, opening one
// when the cache runs on another backend.
func (a *app) rateLimitClient() goredis.Cmdable {
	if a.textClient == nil {
		a.textClient = redis.NewRedisClient(&a.cfg.Redis)
		a.closers = append(a.closers, a.textClient.Close)
	}
	return a.textClient
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.WithError(err).Warn("close failed")
		}
	}
	a.closers = nil
}
