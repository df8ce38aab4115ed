package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"cloud-kitchen-client/config"
	"cloud-kitchen-client/internal/client"
	"cloud-kitchen-client/internal/events"
	"cloud-kitchen-client/internal/logging"
	"cloud-kitchen-client/internal/session"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	sess := session.NewManager(newStore(cfg, logger))

	var reader *kafka.Reader
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		events.Subscribe(sess, events.NewKafkaPublisher(writer), logger)

		reader = config.NewKafkaReader(cfg, "")
		defer reader.Close()
	}

	nav := client.NavigatorFunc(func(context.Context) {
		fmt.Fprintln(os.Stderr, "Your session has expired. Run `kitchenctl login` to sign in again.")
	})

	a := &app{
		client:  client.New(cfg, &http.Client{Timeout: cfg.HTTPTimeout}, sess, nav, logger),
		session: sess,
		out:     os.Stdout,
	}
	if reader != nil {
		a.events = reader
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newStore(cfg config.Config, logger *zap.SugaredLogger) session.Store {
	switch cfg.SessionStore {
	case "redis":
		rdb := config.MustInitRedis(cfg)
		logger.Debugw("using redis session store", "addr", cfg.RedisAddr(), "key", cfg.SessionKey)
		return session.NewRedisStore(rdb, cfg.SessionKey, cfg.SessionTTL)
	case "memory":
	default:
		logger.Warnw("unknown session store, falling back to memory", "store", cfg.SessionStore)
	}
	logger.Debug("using in-memory session store, logins last for a single command")
	return session.NewMemoryStore()
}
