package main

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"library-desk/internal/config"
	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/models"
	"library-desk/internal/storage"
)

type seedBook struct {
	Name   string
	Author string
	Copies int
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("Błąd wczytywania .env")
	}
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("Błąd konfiguracji")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Błąd połączenia z bazą")
	}
	defer backend.Close()

	catalog := library.NewCatalogService(backend.Stores.Catalog, log)
	// skrypt działa z uprawnieniami operatora, bez logowania
	operator := &models.Session{Username: "seed", Role: models.RoleAdministrator}

	log.Info("Dodawanie przykładowych książek do bazy danych...")

	books := []seedBook{
		{Name: "Wiedźmin: Ostatnie życzenie", Author: "Andrzej Sapkowski", Copies: 3},
		{Name: "Zbrodnia i kara", Author: "Fiodor Dostojewski", Copies: 2},
		{Name: "Sapiens: Od zwierząt do bogów", Author: "Yuval Noah Harari", Copies: 4},
		{Name: "Rok 1984", Author: "George Orwell", Copies: 2},
		{Name: "Atomowe nawyki", Author: "James Clear", Copies: 3},
		{Name: "Harry Potter i Kamień Filozoficzny", Author: "J.K. Rowling", Copies: 5},
		{Name: "Władca Pierścieni: Drużyna Pierścienia", Author: "J.R.R. Tolkien", Copies: 3},
		{Name: "Mistrz i Małgorzata", Author: "Michaił Bułhakow", Copies: 2},
		{Name: "Dune", Author: "Frank Herbert", Copies: 1},
	}

	successCount := 0
	for _, b := range books {
		if _, err := catalog.AddBook(ctx, operator, b.Name, b.Author, strconv.Itoa(b.Copies)); err != nil {
			log.WithError(err).WithField("book", b.Name).Error("❌ Błąd dodawania książki")
			continue
		}
		log.Infof("✓ Dodano: %s - %s", b.Name, b.Author)
		successCount++
	}

	log.Infof("✅ Pomyślnie dodano %d/%d książek do bazy danych", successCount, len(books))
}
