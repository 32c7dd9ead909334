package app

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/Gunvolt24/wb_eshop/config"
	"github.com/Gunvolt24/wb_eshop/internal/catalog"
	"github.com/Gunvolt24/wb_eshop/internal/ports"
	rest "github.com/Gunvolt24/wb_eshop/internal/transport/http"
	"github.com/Gunvolt24/wb_eshop/internal/transport/tcp"
	"github.com/Gunvolt24/wb_eshop/internal/usecase"
	"github.com/Gunvolt24/wb_eshop/internal/wire"
	"github.com/Gunvolt24/wb_eshop/pkg/logger"
	"github.com/Gunvolt24/wb_eshop/pkg/metrics"
	"github.com/Gunvolt24/wb_eshop/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// OrderServer — контракт TCP-сервера заказов для сборки и тестов.
type OrderServer interface {
	Run(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// App — собранное приложение и его внешние интерфейсы (TCP-сервер заказов,
// диагностический HTTP).
type App struct {
	Logger          ports.Logger
	OrderServer     OrderServer
	HTTPServer      *http.Server
	GracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки
// и ошибку. Ошибка занятия адреса заказов фатальна: процесс должен упасть
// на старте с диагностикой, а не принимать клиентов вслепую.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Каталог со случайными ценами; нулевой seed — от текущего времени.
	seed := cfg.Catalog.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	store := catalog.New(cfg.Catalog.Size, cfg.Catalog.InitialStock, rand.New(rand.NewSource(seed)))
	logg.Infof(ctx, "catalog seeded products=%d stock=%d", store.Len(), cfg.Catalog.InitialStock)

	processor := usecase.NewOrderProcessor(store, logg)
	codec := wire.NewCodec(cfg.Server.OrdersPerBatch)

	orderSrv := tcp.NewServer(tcp.Config{
		Addr:         cfg.Server.Addr,
		MaxClients:   cfg.Server.MaxClients,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ProcessDelay: cfg.Server.ProcessDelay,
	}, codec, processor, logg)

	if err := orderSrv.Listen(); err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	if cfg.Logger.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.NewRouter(rest.NewHandler(store, logg))
	httpSrv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	app := &App{
		Logger:          logg,
		OrderServer:     orderSrv,
		HTTPServer:      httpSrv,
		GracefulTimeout: cfg.Server.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает TCP-сервер заказов и диагностический HTTP; ждёт отмены
// контекста или фоновой ошибки и останавливает оба.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.Logger.Infof(ctx, "order server starting")
		if err := a.OrderServer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	go func() {
		a.Logger.Infof(ctx, "diagnostics http starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.GracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "diagnostics http shutdown failed: %v", err)
	}

	// Слушатель закрывается, текущие пакеты дорабатываются в пределах таймаута.
	if err := a.OrderServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "order server shutdown: %v", err)
	} else {
		a.Logger.Infof(ctx, "order server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
