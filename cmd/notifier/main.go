package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/booking"
	"github.com/freshflower/storefront/internal/config"
	kafkax "github.com/freshflower/storefront/internal/kafka"
	"github.com/freshflower/storefront/internal/notifier"
	"github.com/freshflower/storefront/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notifier.Service{
		Redis:       rdb,
		Log:         log,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := os.Getenv("NOTIFIER_GROUP")
	if group == "" {
		group = "notifier-svc"
	}
	workers := config.GetenvInt("NOTIFIER_WORKERS", 4)

	createdCons := kafkax.NewConsumer(cfg.KafkaBrokers, group, booking.TopicBookingCreated, workers, log)
	statusCons := kafkax.NewConsumer(cfg.KafkaBrokers, group, booking.TopicBookingStatusChanged, workers, log)

	start := func(name string, c *kafkax.Consumer, h kafkax.Handler) {
		go func() {
			log.WithFields(logrus.Fields{"group": group, "topic": name, "workers": workers}).Info("notifier consumer started")
			if err := c.Start(ctx, h); err != nil {
				log.WithError(err).WithField("topic", name).Error("consumer exit")
				cancel()
			}
		}()
	}
	start(booking.TopicBookingCreated, createdCons, svc.HandleBookingCreated)
	start(booking.TopicBookingStatusChanged, statusCons, svc.HandleStatusChanged)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down notifier...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
