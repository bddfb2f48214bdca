package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"library-desk/internal/config"
	"library-desk/internal/handlers"
	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/session"
	"library-desk/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 10 * time.Minute
)

func main() {
	// Wczytaj zmienne środowiskowe z pliku .env
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("Nie można wczytać pliku .env")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.WithError(err).Fatal("Nieprawidłowa konfiguracja")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Jedno połączenie z bazą na cały proces, bez ponawiania
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Nie można połączyć się z bazą danych")
	}
	defer backend.Close()

	desk := library.NewDesk(backend.Stores, log, library.WithLoanPeriod(cfg.LoanPeriod()))
	sessions := session.NewManager(cfg.SessionTTL)
	log.WithField("ttl", cfg.SessionTTL).Info("System sesji zainicjalizowany")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(desk, sessions, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("Serwer uruchomiony")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Zamykanie serwera")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		sessions.RunCleanup(gctx, cleanupInterval)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Serwer zakończył pracę z błędem")
	}
}
