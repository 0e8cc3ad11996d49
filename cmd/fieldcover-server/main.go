package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/fieldcover/internal/config"
	"github.com/katalvlaran/fieldcover/internal/server"
)

// Version info (set during build)
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(cfg, logger, Version)
	e := srv.Echo()
	httpSrv := srv.HTTPServer(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("op=server.start addr=%s version=%s plan_timeout=%s max_cells=%d",
			cfg.Addr, Version, cfg.PlanTimeout, cfg.MaxCells)
		if err := e.StartServer(httpSrv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("op=server.start err=%v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("op=server.shutdown err=%v", err)
	}
}
