package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_eshop/internal/ports"
	"github.com/Gunvolt24/wb_eshop/internal/wire"
	"github.com/Gunvolt24/wb_eshop/pkg/metrics"
)

// Config — параметры TCP-сервера заказов.
type Config struct {
	Addr         string
	MaxClients   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProcessDelay time.Duration
}

// Server — принимает соединения и порождает по обработчику на каждое.
// Одновременно обслуживается не более MaxClients клиентов: слот семафора
// занимается до Accept, поэтому лишние соединения ждут в очереди listen,
// а не отбрасываются.
type Server struct {
	cfg       Config
	codec     *wire.Codec
	processor ports.BatchProcessor
	log       ports.Logger

	ln        net.Listener
	sem       chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewServer — конструктор.
func NewServer(cfg Config, codec *wire.Codec, processor ports.BatchProcessor, log ports.Logger) *Server {
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 5
	}
	return &Server{
		cfg:       cfg,
		codec:     codec,
		processor: processor,
		log:       log,
		sem:       make(chan struct{}, cfg.MaxClients),
	}
}

// Listen — занять адрес. Ошибка здесь фатальна для запуска
// (вызывающая сторона завершает процесс с диагностикой).
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr — фактический адрес слушателя (для тестов с портом :0).
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run — цикл приёма соединений. Ошибки Accept не фатальны: логируются,
// приём продолжается. Завершается при отмене контекста или закрытии
// слушателя через Shutdown.
func (s *Server) Run(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.log.Infof(ctx, "order server listening addr=%s max_clients=%d", s.ln.Addr(), s.cfg.MaxClients)

	for {
		// Слот до Accept: при полном семафоре новые клиенты ждут в backlog.
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}

		conn, err := s.ln.Accept()
		if err != nil {
			<-s.sem
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.AcceptErrors.Inc()
			s.log.Warnf(ctx, "accept failed: %v", err)
			continue
		}

		metrics.ConnectionsTotal.Inc()

		h := NewHandler(conn, s.codec, s.processor, s.log, HandlerOptions{
			ReadTimeout:  s.cfg.ReadTimeout,
			WriteTimeout: s.cfg.WriteTimeout,
			ProcessDelay: s.cfg.ProcessDelay,
		})

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-s.sem }()
			h.Serve(ctx)
		}()
	}
}

// Shutdown — закрыть слушатель и дождаться завершения текущих обработчиков
// в пределах контекста. Обработчик, заблокированный на чтении без дедлайна,
// дорабатывает до ctx; тогда возвращается ошибка контекста, а процесс
// завершается (соединения закроет ОС).
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if s.ln != nil {
			_ = s.ln.Close()
		}
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
