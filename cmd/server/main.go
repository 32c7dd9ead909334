package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wb_eshop/config"
	"github.com/Gunvolt24/wb_eshop/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		// ошибка старта (bind/listen) — фатальна
		os.Stderr.WriteString("bootstrap failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer cleanup()

	// graceful shutdown по SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "app run failed: %v", err)
		os.Exit(1)
	}
}
