package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/admin"
	"github.com/freshflower/storefront/internal/booking"
	"github.com/freshflower/storefront/internal/catalog"
	"github.com/freshflower/storefront/internal/config"
	"github.com/freshflower/storefront/internal/httpx"
	kafkax "github.com/freshflower/storefront/internal/kafka"
	"github.com/freshflower/storefront/internal/postgres"
	"github.com/freshflower/storefront/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("db connect")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("db migrate")
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, satu per topic
	createdProd := kafkax.NewProducer(cfg.KafkaBrokers, booking.TopicBookingCreated, 1024, log)
	createdProd.Start(ctx)
	statusProd := kafkax.NewProducer(cfg.KafkaBrokers, booking.TopicBookingStatusChanged, 1024, log)
	statusProd.Start(ctx)

	// Stores & services
	bookingRepo := &booking.Repo{DB: db}
	bookingSvc := booking.NewService(bookingRepo, createdProd, statusProd, cfg.ServiceName, log)

	catalogStore := catalog.NewCachedStore(&catalog.Repo{DB: db}, rdb, log)

	sessions := &admin.RedisSessions{RDB: rdb}
	requireAdmin := httpx.RequireAdmin(sessions)

	router := httpx.NewRouter()
	(&httpx.BookingsHandler{Service: bookingSvc, Log: log}).Register(router, requireAdmin)
	httpx.NewProductsHandler(catalogStore, log).Register(router, requireAdmin)
	(&httpx.AdminHandler{
		Verifier:  admin.Verifier{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		Sessions:  sessions,
		Dashboard: &admin.Dashboard{DB: db, Bookings: bookingRepo},
		Log:       log,
	}).Register(router, requireAdmin)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	createdProd.Close() // tutup inbox -> flush & close writer
	statusProd.Close()
	cancel()
	createdProd.WaitClosed()
	statusProd.WaitClosed()
}
