package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
	"github.com/Gunvolt24/wb_eshop/internal/ports"
	"github.com/Gunvolt24/wb_eshop/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_eshop/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Проверка, что OrderProcessor удовлетворяет порту BatchProcessor.
var _ ports.BatchProcessor = (*OrderProcessor)(nil)

// OrderProcessor — прикладная логика обработки пакета заказов
// (без знаний о транспорте и кодировке).
type OrderProcessor struct {
	catalog ports.Catalog
	log     ports.Logger
}

// NewOrderProcessor — DI-конструктор.
func NewOrderProcessor(catalog ports.Catalog, log ports.Logger) *OrderProcessor {
	return &OrderProcessor{catalog: catalog, log: log}
}

// Process — обработать позиции пакета строго в порядке следования:
//  1. невалидная позиция (product_id вне каталога либо quantity <= 0)
//     молча пропускается: ни счётчиков, ни цены, ни флага;
//  2. успех TryTake → цена*количество в итог, Success=true;
//  3. нехватка остатка → Success=false и сообщение по товару.
//
// Флаг Success отражает исход последней обработанной позиции (last-write-wins) —
// сохранённое поведение исходного протокола. Отката по предыдущим позициям
// нет: каждая позиция — независимое атомарное списание.
func (p *OrderProcessor) Process(ctx context.Context, req *domain.ClientRequest) domain.BatchResult {
	ctx, span := otel.Tracer("usecase").Start(ctx, "process_batch")
	span.SetAttributes(attribute.Int("client_id", int(req.ClientID)))
	defer span.End()

	var res domain.BatchResult
	size := int32(p.catalog.Len())

	for _, item := range req.Orders {
		if item.ProductID < 0 || item.ProductID >= size || item.Quantity <= 0 {
			metrics.LineItems.WithLabelValues("skipped").Inc()
			continue
		}

		out := p.catalog.TryTake(ctx, item.ProductID, item.Quantity)
		if !out.OK {
			res.Success = false
			res.Message = fmt.Sprintf("Product %d is out of stock.", item.ProductID+1)
			metrics.LineItems.WithLabelValues("failed").Inc()
			continue
		}

		res.Success = true
		res.TotalPriceCents += out.UnitPriceCents * int64(item.Quantity)
		metrics.LineItems.WithLabelValues("success").Inc()
		metrics.RevenueCents.Add(float64(out.UnitPriceCents) * float64(item.Quantity))
	}

	metrics.Batches.Inc()
	connID, _ := ctxmeta.ConnIDFromContext(ctx)
	p.log.Infof(ctx, "batch processed conn=%s client_id=%d success=%v total_cents=%d",
		connID, req.ClientID, res.Success, res.TotalPriceCents)

	return res
}
