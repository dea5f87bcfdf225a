package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/phenrril/lojamobile/internal/app"
	"github.com/phenrril/lojamobile/internal/cli"
	"github.com/phenrril/lojamobile/internal/config"
	"github.com/phenrril/lojamobile/internal/logging"
	"github.com/phenrril/lojamobile/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(cli.ExitCommandError)
	}
	// stdout queda para la salida del comando
	logging.SetupTo(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var application *app.App
	open := func(ctx context.Context) (*usecase.CustomerUC, error) {
		a, err := app.NewApp(ctx, cfg)
		if err != nil {
			return nil, err
		}
		application = a
		return a.Customers, nil
	}

	err = cli.NewRootCommand(open).ExecuteContext(ctx)
	if application != nil {
		_ = application.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
