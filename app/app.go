package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookery/library-service/config"
	"github.com/bookery/library-service/internal/handler"
	"github.com/bookery/library-service/internal/repository"
	"github.com/bookery/library-service/internal/server"
	"github.com/bookery/library-service/internal/service"
	"github.com/bookery/library-service/migrations"
	"github.com/bookery/library-service/pkg/kafka"
	"github.com/bookery/library-service/pkg/logger"
	"github.com/bookery/library-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	inventoryRepo := repository.NewInventoryRepository(log)
	bookRepo, err := repository.NewBookRepository(db, log)
	if err != nil {
		log.Fatal("repo book", zap.Error(err))
	}
	loanRepo, err := repository.NewLoanRepository(db, inventoryRepo, log)
	if err != nil {
		log.Fatal("repo loan", zap.Error(err))
	}
	userRepo, err := repository.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("repo user", zap.Error(err))
	}
	statsRepo, err := repository.NewStatsRepository(db, log)
	if err != nil {
		log.Fatal("repo stats", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}

	catalogSvc := service.NewCatalogService(bookRepo, log)
	loanSvc := service.NewLoanService(loanRepo, service.NewEnqueuer(producer), log)
	authSvc := service.NewAuthService(userRepo, cfg.AdminCode, log)
	statsSvc := service.NewStatsService(statsRepo, loanRepo, log)

	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()
	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.LoanConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}
	go func() {
		if err := kafka.Consume(consumeCtx, consumer, handler.NewConsumer(statsSvc.Stats, log), kafka.LoanTopic); err != nil {
			log.Error("kafka.Consume", zap.Error(err))
		}
	}()

	h := handler.New(catalogSvc, loanSvc, authSvc, statsSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	consumeCancel()
	if err = consumer.Close(); err != nil {
		log.Error("consumer.Close", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
