// Package client — отправка пакетов случайных заказов на сервер
// и печать ответов (нагрузочный клиент из исходного сервиса).
package client

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"time"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
	"github.com/Gunvolt24/wb_eshop/internal/ports"
	"github.com/Gunvolt24/wb_eshop/internal/wire"
)

// Runner — клиент одного соединения.
type Runner struct {
	id          int32
	catalogSize int
	codec       *wire.Codec
	rng         *rand.Rand
	out         io.Writer
	log         ports.Logger
}

// NewRunner — конструктор; out — куда печатать ответы (stdout в бинаре,
// буфер в тестах).
func NewRunner(id int32, catalogSize int, codec *wire.Codec, rng *rand.Rand,
	out io.Writer, log ports.Logger) *Runner {
	return &Runner{
		id:          id,
		catalogSize: catalogSize,
		codec:       codec,
		rng:         rng,
		out:         out,
		log:         log,
	}
}

// Run — отправить batches пакетов по соединению с паузой delay между ними.
// Обрыв соединения завершает цикл с ошибкой; ответы печатаются в out.
func (r *Runner) Run(ctx context.Context, conn net.Conn, batches int, delay time.Duration) error {
	for i := 0; i < batches; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req := r.randomBatch()
		if err := r.codec.WriteRequest(conn, req); err != nil {
			return fmt.Errorf("send batch %d: %w", i+1, err)
		}

		res, err := r.codec.ReadResponse(conn)
		if err != nil {
			return fmt.Errorf("read response %d: %w", i+1, err)
		}

		msg := res.Message
		if msg != "" {
			msg += " "
		}
		fmt.Fprintf(r.out, "Client %d - %sTotal Price: %.2f\n",
			r.id, msg, float64(res.TotalPriceCents)/100)

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// randomBatch — полный пакет из K случайных позиций: товар из каталога,
// количество 1 или 2 (как исходный клиент).
func (r *Runner) randomBatch() *domain.ClientRequest {
	orders := make([]domain.LineItem, r.codec.OrdersPerBatch())
	for i := range orders {
		orders[i] = domain.LineItem{
			ProductID: int32(r.rng.Intn(r.catalogSize)),
			Quantity:  int32(1 + r.rng.Intn(2)),
		}
	}
	return &domain.ClientRequest{ClientID: r.id, Orders: orders}
}
