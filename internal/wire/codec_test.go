package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
)

func TestRequest_RoundTripPadsToBatchSize(t *testing.T) {
	c := NewCodec(10)

	var buf bytes.Buffer
	err := c.WriteRequest(&buf, &domain.ClientRequest{
		ClientID: 7,
		Orders: []domain.LineItem{
			{ProductID: 3, Quantity: 2},
			{ProductID: -1, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("WriteRequest: %v", err)
	}
	if buf.Len() != c.RequestSize() {
		t.Fatalf("record size: want %d, got %d", c.RequestSize(), buf.Len())
	}

	got, err := c.ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if got.ClientID != 7 {
		t.Fatalf("client_id: want 7, got %d", got.ClientID)
	}
	if len(got.Orders) != 10 {
		t.Fatalf("orders must be padded to K=10, got %d", len(got.Orders))
	}
	if got.Orders[0] != (domain.LineItem{ProductID: 3, Quantity: 2}) {
		t.Fatalf("orders[0] wrong: %+v", got.Orders[0])
	}
	// знаковые значения переживают кодирование
	if got.Orders[1].ProductID != -1 {
		t.Fatalf("orders[1].product_id: want -1, got %d", got.Orders[1].ProductID)
	}
	// дополненные слоты — нулевые, сервер их пропустит
	if got.Orders[9] != (domain.LineItem{}) {
		t.Fatalf("padded slot must be zero: %+v", got.Orders[9])
	}
}

func TestRequest_Overflow(t *testing.T) {
	c := NewCodec(2)

	err := c.WriteRequest(io.Discard, &domain.ClientRequest{
		Orders: make([]domain.LineItem, 3),
	})
	if !errors.Is(err, ErrBatchOverflow) {
		t.Fatalf("want ErrBatchOverflow, got %v", err)
	}
}

func TestRequest_TruncatedRecord(t *testing.T) {
	c := NewCodec(10)

	var buf bytes.Buffer
	if err := c.WriteRequest(&buf, &domain.ClientRequest{ClientID: 1}); err != nil {
		t.Fatalf("WriteRequest: %v", err)
	}

	// обрыв посреди записи — io.ErrUnexpectedEOF
	short := bytes.NewReader(buf.Bytes()[:c.RequestSize()-1])
	if _, err := c.ReadRequest(short); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}

	// чистая граница записей — io.EOF
	if _, err := c.ReadRequest(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Fatalf("want EOF, got %v", err)
	}
}

func TestRequest_VersionMismatch(t *testing.T) {
	c := NewCodec(10)

	raw := make([]byte, c.RequestSize())
	raw[0] = 0x7f
	if _, err := c.ReadRequest(bytes.NewReader(raw)); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("want ErrVersionMismatch, got %v", err)
	}
}

func TestResponse_RoundTrip(t *testing.T) {
	c := NewCodec(10)

	var buf bytes.Buffer
	want := domain.BatchResult{
		Success:         true,
		Message:         "Product 3 is out of stock.",
		TotalPriceCents: 2050,
	}
	if err := c.WriteResponse(&buf, want); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	if buf.Len() != c.ResponseSize() {
		t.Fatalf("record size: want %d, got %d", c.ResponseSize(), buf.Len())
	}

	got, err := c.ReadResponse(&buf)
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip: want %+v, got %+v", want, got)
	}
}

func TestResponse_MessageTruncatedToFieldWidth(t *testing.T) {
	c := NewCodec(10)

	var buf bytes.Buffer
	long := strings.Repeat("x", MessageSize+20)
	if err := c.WriteResponse(&buf, domain.BatchResult{Message: long}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}

	got, err := c.ReadResponse(&buf)
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if len(got.Message) != MessageSize {
		t.Fatalf("message width: want %d, got %d", MessageSize, len(got.Message))
	}
}
