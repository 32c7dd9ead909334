package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/Gunvolt24/wb_eshop/internal/ports"
	"github.com/Gunvolt24/wb_eshop/internal/wire"
	"github.com/Gunvolt24/wb_eshop/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_eshop/pkg/metrics"
	"github.com/google/uuid"
)

// HandlerOptions — поведение одного соединения.
// Нулевые таймауты отключают дедлайны; ProcessDelay имитирует время
// диспетчеризации заказа (как в исходном сервисе) и выдерживается
// без каких-либо общих замков.
type HandlerOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProcessDelay time.Duration
}

// Handler — обработчик одного клиентского соединения.
// Цикл: прочитать запись запроса → обработать пакет → записать запись ответа.
// Любая ошибка чтения/записи фатальна только для этого соединения.
type Handler struct {
	conn      net.Conn
	codec     *wire.Codec
	processor ports.BatchProcessor
	log       ports.Logger
	opts      HandlerOptions
	id        string
}

// NewHandler — конструктор; id соединения генерируется для корреляции логов.
func NewHandler(conn net.Conn, codec *wire.Codec, processor ports.BatchProcessor,
	log ports.Logger, opts HandlerOptions) *Handler {
	return &Handler{
		conn:      conn,
		codec:     codec,
		processor: processor,
		log:       log,
		opts:      opts,
		id:        uuid.NewString(),
	}
}

// Serve — обслуживать соединение до EOF, ошибки или отмены контекста.
// Соединение закрывается на любом пути выхода.
func (h *Handler) Serve(ctx context.Context) {
	defer func() { _ = h.conn.Close() }()

	// conn_id в контексте — сквозная корреляция логов обработки пакета.
	ctx = ctxmeta.WithConnID(ctx, h.id)

	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	h.log.Infof(ctx, "connection opened conn=%s remote=%s", h.id, h.conn.RemoteAddr())

	for {
		if ctx.Err() != nil {
			h.log.Infof(ctx, "connection closed on shutdown conn=%s", h.id)
			return
		}

		if h.opts.ReadTimeout > 0 {
			_ = h.conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
		}

		req, err := h.codec.ReadRequest(h.conn)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				h.log.Infof(ctx, "client disconnected conn=%s", h.id)
			case errors.Is(err, io.ErrUnexpectedEOF):
				h.log.Warnf(ctx, "partial record, closing conn=%s", h.id)
			default:
				h.log.Warnf(ctx, "read failed conn=%s err=%v", h.id, err)
			}
			return
		}

		start := time.Now()
		res := h.processor.Process(ctx, req)
		metrics.BatchDuration.Observe(time.Since(start).Seconds())

		if h.opts.WriteTimeout > 0 {
			_ = h.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
		}
		if err := h.codec.WriteResponse(h.conn, res); err != nil {
			h.log.Warnf(ctx, "write failed conn=%s err=%v", h.id, err)
			return
		}

		// Пауза после отправки ответа; общие ресурсы в этот момент не заняты.
		if h.opts.ProcessDelay > 0 {
			select {
			case <-time.After(h.opts.ProcessDelay):
			case <-ctx.Done():
				h.log.Infof(ctx, "connection closed on shutdown conn=%s", h.id)
				return
			}
		}
	}
}
