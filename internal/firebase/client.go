package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config zawiera dane potrzebne do połączenia z Firestore
type Config struct {
	ProjectID       string
	CredentialsPath string
	CredentialsJSON string
	// EmulatorHost (FIRESTORE_EMULATOR_HOST) - połączenie z lokalnym emulatorem bez credentials
	EmulatorHost string
}

// Client zawiera klientów Firebase
type Client struct {
	App       *firebase.App
	Firestore *firestore.Client
}

// InitFirebase inicjalizuje klienta Firestore. Połączenie jest otwierane raz i używane przez cały proces.
func InitFirebase(ctx context.Context, cfg Config) (*Client, error) {
	// Emulator - pomijamy Firebase App, biblioteka Firestore sama łączy się bez autoryzacji
	if cfg.EmulatorHost != "" {
		if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.EmulatorHost)
		}
		projectID := cfg.ProjectID
		if projectID == "" {
			projectID = "library-desk"
		}
		fs, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("błąd połączenia z emulatorem Firestore: %w", err)
		}
		return &Client{Firestore: fs}, nil
	}

	var opt option.ClientOption
	switch {
	case cfg.CredentialsPath != "":
		// Tryb lokalny - użyj pliku
		if _, err := os.Stat(cfg.CredentialsPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("plik credentials nie istnieje: %s", cfg.CredentialsPath)
		}
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	case cfg.CredentialsJSON != "":
		// Tryb produkcyjny - JSON ze zmiennej środowiskowej
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("brak FIREBASE_CREDENTIALS_PATH lub FIREBASE_CREDENTIALS_JSON")
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("błąd inicjalizacji Firebase App: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd inicjalizacji Firestore: %w", err)
	}

	return &Client{App: app, Firestore: fs}, nil
}

// Close zamyka połączenia z Firebase
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
