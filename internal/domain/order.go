package domain

// Константы протокола и каталога (совпадают с исходным сервисом).
const (
	// DefaultCatalogSize — количество товаров в каталоге.
	DefaultCatalogSize = 20
	// DefaultInitialStock — стартовый остаток каждого товара.
	DefaultInitialStock = 2
	// DefaultOrdersPerBatch — фиксированное число позиций в одном запросе клиента.
	DefaultOrdersPerBatch = 10
)

// Product — товар каталога. Идентифицируется индексом [0..N).
// Цена хранится в центах: остатки точности float недопустимы при подсчёте выручки.
type Product struct {
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

// LineItem — одна позиция заказа: (товар, количество).
// Позиция невалидна, если product_id вне каталога или quantity <= 0;
// такие позиции молча пропускаются и не попадают в счётчики.
type LineItem struct {
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// ClientRequest — пакет заказов одного клиента (один запрос по протоколу).
// Позиции обрабатываются строго в порядке следования.
type ClientRequest struct {
	ClientID int32      `json:"client_id"`
	Orders   []LineItem `json:"orders"`
}

// BatchResult — итог обработки пакета.
// Success отражает исход последней обработанной позиции (last-write-wins —
// сохранённая особенность исходного протокола, а не "все позиции успешны").
// TotalPriceCents накапливается только по успешным позициям.
type BatchResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

// TakeOutcome — результат атомарного списания остатка в каталоге.
type TakeOutcome struct {
	OK             bool
	UnitPriceCents int64
}

// Counters — глобальные счётчики сервера. Изменяются только под тем же
// замком, что и остатки; инвариант: Total == Successful + Failed в покое.
type Counters struct {
	TotalOrders      int64 `json:"total_orders"`
	SuccessfulOrders int64 `json:"successful_orders"`
	FailedOrders     int64 `json:"failed_orders"`
	RevenueCents     int64 `json:"revenue_cents"`
}
