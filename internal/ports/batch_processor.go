package ports

import (
	"context"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
)

// BatchProcessor — прикладная обработка пакета заказов (порт для транспорта).
type BatchProcessor interface {
	Process(ctx context.Context, req *domain.ClientRequest) domain.BatchResult
}
