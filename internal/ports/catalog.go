package ports

import (
	"context"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
)

// Catalog — хранилище каталога с атомарным списанием остатков.
// Требования к реализации: потокобезопасность; TryTake линеаризуем —
// два конкурентных запроса на последний остаток не могут выполниться оба.
type Catalog interface {
	// TryTake — атомарно проверить и списать quantity единиц товара.
	// Вход считается предварительно провалидированным вызывающей стороной
	// (productID в диапазоне, quantity > 0) — диапазон тут не перепроверяется.
	// (OK: true, цена) при успехе; (OK: false) без изменения остатка иначе.
	TryTake(ctx context.Context, productID, quantity int32) domain.TakeOutcome

	// Len — размер каталога (для валидации диапазона product_id).
	Len() int
}
