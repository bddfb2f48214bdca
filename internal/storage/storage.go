package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"library-desk/internal/config"
	"library-desk/internal/firebase"
	"library-desk/internal/library"
	"library-desk/internal/redisstore"
)

// Backend to otwarte połączenie z bazą i trzy magazyny korzystające z niego
type Backend struct {
	Name   string
	Stores library.Stores
	closer io.Closer
}

// Close zamyka połączenie z bazą
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Open łączy się z bazą wybraną w konfiguracji. Połączenie jest otwierane raz, bez ponawiania.
func Open(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, err := firebase.InitFirebase(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsPath: cfg.FirebaseCredentialsPath,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
			EmulatorHost:    cfg.FirestoreEmulatorHost,
		})
		if err != nil {
			return nil, err
		}
		log.WithField("backend", cfg.StoreBackend).Info("połączono z Firestore")
		return newBackend(cfg.StoreBackend, client, client), nil

	case config.BackendRedis:
		client, err := redisstore.Open(ctx, redisstore.Options{
			URL:         cfg.RedisURL,
			InsecureTLS: cfg.StoreTLSInsecure,
			Prefix:      cfg.StorePrefix,
		})
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"backend":      cfg.StoreBackend,
			"tls_insecure": cfg.StoreTLSInsecure,
		}).Info("połączono z Redis")
		return newBackend(cfg.StoreBackend, client, client), nil
	}

	return nil, fmt.Errorf("nieznany backend: %q", cfg.StoreBackend)
}

type documentStore interface {
	library.CredentialStore
	library.CatalogStore
	library.LoanLedger
}

func newBackend(name string, store documentStore, closer io.Closer) *Backend {
	return &Backend{
		Name: name,
		Stores: library.Stores{
			Credentials: store,
			Catalog:     store,
			Loans:       store,
		},
		closer: closer,
	}
}
