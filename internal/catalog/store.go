package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
	"github.com/Gunvolt24/wb_eshop/internal/ports"
)

// Проверка, что Store удовлетворяет порту каталога.
var _ ports.Catalog = (*Store)(nil)

// priceStepCents — шаг случайной цены: десятая доля единицы (10 центов),
// диапазон [0 .. 99.90], как в исходном каталоге.
const priceStepCents = 10

// Store — каталог товаров и глобальные счётчики сервера.
// Единственное разделяемое изменяемое состояние процесса; всё — под одним
// мьютексом. Замок берётся только на время одной операции списания и никогда
// не удерживается через сетевой ввод-вывод или паузы обработчика.
type Store struct {
	mu       sync.Mutex
	products []domain.Product
	counters domain.Counters
}

// New — каталог из size товаров со случайными ценами и остатком
// initialStock у каждого. rng == nil недопустим для детерминированных
// тестов, поэтому источник передаётся явно.
func New(size, initialStock int, rng *rand.Rand) *Store {
	if size <= 0 {
		size = domain.DefaultCatalogSize
	}
	if initialStock < 0 {
		initialStock = 0
	}

	products := make([]domain.Product, size)
	for i := range products {
		products[i] = domain.Product{
			Description: fmt.Sprintf("Product %d", i+1),
			PriceCents:  rng.Int63n(1000) * priceStepCents,
			Stock:       initialStock,
		}
	}

	return &Store{products: products}
}

// NewFromProducts — каталог с заранее заданными товарами
// (детерминированные сценарии в тестах и фикстуры).
func NewFromProducts(products []domain.Product) *Store {
	return &Store{
		products: append([]domain.Product(nil), products...),
	}
}

// TryTake — атомарная проверка и списание остатка.
// Вход предварительно провалидирован вызывающей стороной (см. ports.Catalog).
// Счётчики заказов и выручка обновляются в той же критической секции,
// что и остаток: позиция заказа — единая атомарная единица.
func (s *Store) TryTake(_ context.Context, productID, quantity int32) domain.TakeOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.products[productID]
	s.counters.TotalOrders++

	if p.Stock < int(quantity) {
		s.counters.FailedOrders++
		return domain.TakeOutcome{}
	}

	p.Stock -= int(quantity)
	s.counters.SuccessfulOrders++
	s.counters.RevenueCents += p.PriceCents * int64(quantity)

	return domain.TakeOutcome{OK: true, UnitPriceCents: p.PriceCents}
}

// Len — размер каталога.
func (s *Store) Len() int { return len(s.products) }

// Product — копия товара по индексу; (Product{}, false) вне диапазона.
func (s *Store) Product(id int32) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || int(id) >= len(s.products) {
		return domain.Product{}, false
	}
	return s.products[id], true
}

// Products — снимок каталога для диагностики.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.Product(nil), s.products...)
}

// Counters — снимок глобальных счётчиков.
func (s *Store) Counters() domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters
}
