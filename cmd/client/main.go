package main

import (
	"context"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Gunvolt24/wb_eshop/config"
	"github.com/Gunvolt24/wb_eshop/internal/client"
	"github.com/Gunvolt24/wb_eshop/internal/wire"
	"github.com/Gunvolt24/wb_eshop/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		panic(err)
	}
	defer func() { _ = cleanup() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	// идентификатор клиента: аргумент командной строки либо pid процесса
	id := os.Getpid()
	if len(os.Args) > 1 {
		parsed, perr := strconv.Atoi(os.Args[1])
		if perr != nil {
			os.Stderr.WriteString("usage: client [numeric-id]\n")
			os.Exit(2)
		}
		id = parsed
	}

	conn, err := net.Dial("tcp", cfg.Client.Addr)
	if err != nil {
		logg.Errorf(ctx, "connect to %s failed: %v", cfg.Client.Addr, err)
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	logg.Infof(ctx, "connected addr=%s client_id=%d", cfg.Client.Addr, id)

	runner := client.NewRunner(
		int32(id),
		cfg.Catalog.Size,
		wire.NewCodec(cfg.Server.OrdersPerBatch),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		os.Stdout,
		logg,
	)

	if err := runner.Run(ctx, conn, cfg.Client.Batches, cfg.Client.SendDelay); err != nil {
		logg.Warnf(ctx, "client stopped: %v", err)
		return
	}
	logg.Infof(ctx, "all batches sent client_id=%d", id)
}
