package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-desk/internal/config"
	"library-desk/internal/library"
	"library-desk/internal/logging"
	"library-desk/internal/storage"
	"library-desk/internal/terminal"
)

var configFile string

// readPassword czyta hasło z maskowaniem
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return string(bytePassword), nil
}

// openConsole łączy się z bazą i tworzy konsolę na stdin/stdout
func openConsole(ctx context.Context) (*terminal.Console, func(), error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("połączenie z bazą: %w", err)
	}

	desk := library.NewDesk(backend.Stores, log, library.WithLoanPeriod(cfg.LoanPeriod()))

	var opts []terminal.Option
	if term.IsTerminal(int(syscall.Stdin)) {
		opts = append(opts, terminal.WithPasswordReader(readPassword))
	}
	console := terminal.NewConsole(desk, os.Stdin, os.Stdout, log, opts...)

	closeFn := func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Warn("błąd zamykania połączenia")
		}
	}
	return console, closeFn, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "desk",
		Short:         "Okienko biblioteki w terminalu",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			console, closeFn, err := openConsole(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return console.Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "plik konfiguracyjny YAML (domyślnie config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "setup",
		Short: "Utwórz pierwszych administratorów",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console, closeFn, err := openConsole(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return console.Setup(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "search NAZWA",
		Short: "Wyszukaj książkę po dokładnej nazwie",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console, closeFn, err := openConsole(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if !console.Search(cmd.Context(), strings.Join(args, " ")) {
				return fmt.Errorf("wyszukiwanie nie powiodło się")
			}
			return nil
		},
	})

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("desk")
		stop()
		os.Exit(1)
	}
}
