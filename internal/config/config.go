package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath to domyślna ścieżka pliku konfiguracyjnego (opcjonalnego)
const DefaultPath = "config.yaml"

const (
	BackendFirestore = "firestore"
	BackendRedis     = "redis"
)

// Config to konfiguracja aplikacji: plik YAML nadpisywany zmiennymi środowiskowymi
type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	StoreBackend string `yaml:"storeBackend"`
	// RedisURL to connection string dla backendu redis (redis:// lub rediss://)
	RedisURL string `yaml:"redisURL"`
	// StoreTLSInsecure wyłącza weryfikację certyfikatu bazy
	StoreTLSInsecure bool   `yaml:"storeTLSInsecure"`
	StorePrefix      string `yaml:"storePrefix"`

	FirebaseProjectID       string `yaml:"firebaseProjectID"`
	FirebaseCredentialsPath string `yaml:"firebaseCredentialsPath"`
	FirebaseCredentialsJSON string `yaml:"-"`
	FirestoreEmulatorHost   string `yaml:"firestoreEmulatorHost"`

	LoanPeriodDays int           `yaml:"loanPeriodDays"`
	SessionTTL     time.Duration `yaml:"sessionTTL"`
}

// LoanPeriod zwraca okres wypożyczenia jako czas trwania
func (c Config) LoanPeriod() time.Duration {
	return time.Duration(c.LoanPeriodDays) * 24 * time.Hour
}

func defaults() Config {
	return Config{
		Port:             "8080",
		LogLevel:         "info",
		LogFormat:        "text",
		StoreBackend:     BackendFirestore,
		StoreTLSInsecure: true,
		LoanPeriodDays:   14,
		SessionTTL:       24 * time.Hour,
	}
}

// LoadDotEnv wczytuje plik .env jeśli istnieje. Brak pliku nie jest błędem.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load czyta konfigurację z pliku (jeśli istnieje) i nakłada zmienne środowiskowe
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// plik jest opcjonalny
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.StoreBackend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("STORE_TLS_INSECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STORE_TLS_INSECURE: %w", err)
		}
		cfg.StoreTLSInsecure = b
	}
	if v := os.Getenv("STORE_PREFIX"); v != "" {
		cfg.StorePrefix = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		cfg.FirebaseProjectID = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_PATH"); v != "" {
		cfg.FirebaseCredentialsPath = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_JSON"); v != "" {
		cfg.FirebaseCredentialsJSON = v
	}
	if v := os.Getenv("FIRESTORE_EMULATOR_HOST"); v != "" {
		cfg.FirestoreEmulatorHost = v
	}
	if v := os.Getenv("LOAN_PERIOD_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOAN_PERIOD_DAYS: %w", err)
		}
		cfg.LoanPeriodDays = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	return nil
}

// Validate sprawdza spójność konfiguracji
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFirestore:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("backend redis wymaga REDIS_URL")
		}
	default:
		return fmt.Errorf("nieznany STORE_BACKEND: %q", c.StoreBackend)
	}
	if c.LoanPeriodDays <= 0 {
		return fmt.Errorf("loanPeriodDays musi być dodatnie, jest %d", c.LoanPeriodDays)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("sessionTTL musi być dodatnie")
	}
	return nil
}
