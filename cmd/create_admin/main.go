package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"library-desk/internal/config"
	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/models"
	"library-desk/internal/storage"
)

// adminsFile to format pliku z listą administratorów:
//
//	admins:
//	  - username: alice
//	    password: Secret123
type adminsFile struct {
	Admins []models.Credentials `yaml:"admins"`
}

func loadAdmins(path string) ([]models.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "odczyt pliku administratorów")
	}
	var f adminsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsowanie %s", path)
	}
	return f.Admins, nil
}

func run(ctx context.Context, admins []models.Credentials, configFile string) error {
	if err := config.LoadDotEnv(); err != nil {
		return errors.Wrap(err, "plik .env")
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return errors.Wrap(err, "połączenie z bazą")
	}
	defer backend.Close()

	desk := library.NewDesk(backend.Stores, log)
	res := desk.Execute(ctx, nil, library.Request{Command: library.CmdBootstrap, Admins: admins})
	if !res.OK() {
		return res.Err
	}

	fmt.Println("=== Administratorzy utworzeni pomyślnie ===")
	for _, a := range admins {
		fmt.Printf("✓ %s\n", a.Username)
	}
	fmt.Println("\nMożesz teraz zalogować się do panelu admina.")
	return nil
}

func main() {
	var (
		configFile string
		adminsPath string
		username   string
		password   string
	)

	cmd := &cobra.Command{
		Use:          "create_admin",
		Short:        "Utwórz pierwszych administratorów biblioteki",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var admins []models.Credentials
			if adminsPath != "" {
				list, err := loadAdmins(adminsPath)
				if err != nil {
					return err
				}
				admins = append(admins, list...)
			}

			if username == "" {
				username = os.Getenv("ADMIN_USERNAME")
			}
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if username != "" {
				admins = append(admins, models.Credentials{Username: username, Password: password})
			}

			if len(admins) == 0 {
				return errors.New("podaj --username/--password, ADMIN_USERNAME/ADMIN_PASSWORD albo --file")
			}
			return run(cmd.Context(), admins, configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "plik konfiguracyjny YAML")
	cmd.Flags().StringVarP(&adminsPath, "file", "f", "", "plik YAML z listą administratorów")
	cmd.Flags().StringVarP(&username, "username", "u", "", "nazwa administratora")
	cmd.Flags().StringVarP(&password, "password", "p", "", "hasło administratora")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
