package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/internal/ioauth"
	"github.com/leafdex/leafdex/internal/ioclassifier"
	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/internal/iogame"
	"github.com/leafdex/leafdex/internal/iohttp"
	"github.com/leafdex/leafdex/internal/iostorage"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the Leafdex HTTP API.

The server connects to PostgreSQL and to the external collaborators
(classifier, image storage, auth) named in the configuration, then
listens until interrupted. SIGINT and SIGTERM drain in-flight
requests before exit.

Examples:
  leafdex serve
  leafdex serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, port)
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"port to listen on (overrides configuration)")

	return serveCmd
}

func runServe(_ *cobra.Command, _ []string, port int) error {
	if port > 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	clf := ioclassifier.New(cfg.Classifier)
	store := iostorage.New(cfg.Storage)
	auth := ioauth.New(cfg.Auth)

	game, err := iogame.New(cfg, op, clf, store)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Serving on port <em>%d</em>", cfg.Server.Port)

	srv := iohttp.NewServer(cfg, game, auth, nil)
	if err = srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
