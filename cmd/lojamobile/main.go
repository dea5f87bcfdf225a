package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/lojamobile/internal/app"
	"github.com/phenrril/lojamobile/internal/config"
	"github.com/phenrril/lojamobile/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logging.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo iniciar la app")
	}
	defer application.Close()

	ln, port, err := listen(cfg.Port)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no hay puerto disponible")
	}

	server := &http.Server{
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info().Str("port", port).Msg("servidor escuchando")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error().Err(err).Msg("servidor detenido")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
	zlog.Info().Msg("servidor apagado")
}

// listen usa el puerto pedido y, si está ocupado, prueba 8081-8090.
func listen(port string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err == nil {
		return ln, port, nil
	}
	zlog.Warn().Err(err).Str("port", port).Msg("puerto ocupado, probando alternativos")
	for p := 8081; p <= 8090; p++ {
		alt := fmt.Sprint(p)
		if l2, err2 := net.Listen("tcp", ":"+alt); err2 == nil {
			return l2, alt, nil
		}
	}
	return nil, "", err
}
