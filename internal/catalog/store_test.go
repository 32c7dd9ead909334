package catalog

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
)

func newStore(stock int, priceCents int64) *Store {
	return NewFromProducts([]domain.Product{
		{Description: "Product 1", PriceCents: priceCents, Stock: stock},
	})
}

func TestNew_SeedsCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := New(20, 2, rng)

	if s.Len() != 20 {
		t.Fatalf("Len: want 20, got %d", s.Len())
	}
	for i, p := range s.Products() {
		if p.Stock != 2 {
			t.Fatalf("product %d: want stock 2, got %d", i, p.Stock)
		}
		// цены в диапазоне [0 .. 99.90] с шагом в десятую долю
		if p.PriceCents < 0 || p.PriceCents > 9990 || p.PriceCents%10 != 0 {
			t.Fatalf("product %d: unexpected price %d", i, p.PriceCents)
		}
		if p.Description == "" {
			t.Fatalf("product %d: empty description", i)
		}
	}
}

func TestTryTake_SuccessAndDecrement(t *testing.T) {
	s := newStore(2, 1000)
	ctx := context.Background()

	out := s.TryTake(ctx, 0, 1)
	if !out.OK || out.UnitPriceCents != 1000 {
		t.Fatalf("want (ok, 1000), got %+v", out)
	}

	p, _ := s.Product(0)
	if p.Stock != 1 {
		t.Fatalf("stock: want 1, got %d", p.Stock)
	}

	c := s.Counters()
	if c.TotalOrders != 1 || c.SuccessfulOrders != 1 || c.FailedOrders != 0 {
		t.Fatalf("counters wrong: %+v", c)
	}
	if c.RevenueCents != 1000 {
		t.Fatalf("revenue: want 1000, got %d", c.RevenueCents)
	}
}

func TestTryTake_InsufficientStock_LeavesStockUnchanged(t *testing.T) {
	s := newStore(1, 500)
	ctx := context.Background()

	out := s.TryTake(ctx, 0, 2)
	if out.OK {
		t.Fatalf("expected failure on qty 2 with stock 1")
	}

	p, _ := s.Product(0)
	if p.Stock != 1 {
		t.Fatalf("stock must stay 1, got %d", p.Stock)
	}

	c := s.Counters()
	if c.TotalOrders != 1 || c.SuccessfulOrders != 0 || c.FailedOrders != 1 || c.RevenueCents != 0 {
		t.Fatalf("counters wrong: %+v", c)
	}
}

// Свойство атомарности из спецификации протокола: при S единицах на складе и
// M конкурентных запросах по q единиц успешны ровно floor(S/q).
func TestTryTake_ConcurrentNeverOversells(t *testing.T) {
	const (
		stock   = 50
		qty     = 3
		callers = 200
	)
	s := newStore(stock, 700)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if s.TryTake(ctx, 0, qty).OK {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	wantOK := stock / qty
	if succeeded != wantOK {
		t.Fatalf("successes: want %d, got %d", wantOK, succeeded)
	}

	p, _ := s.Product(0)
	if wantStock := stock - qty*wantOK; p.Stock != wantStock {
		t.Fatalf("final stock: want %d, got %d", wantStock, p.Stock)
	}

	c := s.Counters()
	if c.TotalOrders != callers {
		t.Fatalf("total: want %d, got %d", callers, c.TotalOrders)
	}
	if c.SuccessfulOrders+c.FailedOrders != c.TotalOrders {
		t.Fatalf("invariant broken: %+v", c)
	}
	if c.RevenueCents != int64(wantOK)*qty*700 {
		t.Fatalf("revenue: want %d, got %d", int64(wantOK)*qty*700, c.RevenueCents)
	}
}

func TestProduct_OutOfRange(t *testing.T) {
	s := newStore(1, 100)

	if _, ok := s.Product(-1); ok {
		t.Fatalf("expected false for id=-1")
	}
	if _, ok := s.Product(1); ok {
		t.Fatalf("expected false for id past the end")
	}
}

func TestProducts_ReturnsCopy(t *testing.T) {
	s := newStore(2, 100)

	snap := s.Products()
	snap[0].Stock = 99

	p, _ := s.Product(0)
	if p.Stock != 2 {
		t.Fatalf("snapshot must not alias store state, stock=%d", p.Stock)
	}
}
