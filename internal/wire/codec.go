// Package wire — фиксированная двоичная кодировка протокола заказов.
//
// Записи фиксированного размера, big-endian, без префикса длины —
// кадром служит сам размер записи. Первый байт каждой записи — версия
// кодировки, чтобы не зависеть от раскладки структур в памяти.
//
// Запрос:  version(1) + client_id(int32) + K*(product_id(int32) + quantity(int32))
// Ответ:   version(1) + success(1) + message(100, NUL-padded) + total_price_cents(int64)
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_eshop/internal/domain"
)

// Version — текущая версия кодировки.
const Version = 1

// MessageSize — фиксированная ширина поля сообщения в ответе.
const MessageSize = 100

var (
	// ErrVersionMismatch — запись другой версии кодировки.
	ErrVersionMismatch = errors.New("wire: version mismatch")
	// ErrBatchOverflow — в запросе больше позиций, чем вмещает запись.
	ErrBatchOverflow = errors.New("wire: too many orders for one batch")
)

// Codec — кодек записей; параметризован числом позиций K в запросе.
type Codec struct {
	ordersPerBatch int
}

// NewCodec — конструктор; ordersPerBatch <= 0 заменяется значением по умолчанию.
func NewCodec(ordersPerBatch int) *Codec {
	if ordersPerBatch <= 0 {
		ordersPerBatch = domain.DefaultOrdersPerBatch
	}
	return &Codec{ordersPerBatch: ordersPerBatch}
}

// OrdersPerBatch — число позиций K в одной записи запроса.
func (c *Codec) OrdersPerBatch() int { return c.ordersPerBatch }

// RequestSize — размер записи запроса в байтах.
func (c *Codec) RequestSize() int { return 1 + 4 + 8*c.ordersPerBatch }

// ResponseSize — размер записи ответа в байтах.
func (c *Codec) ResponseSize() int { return 1 + 1 + MessageSize + 8 }

// ReadRequest — прочитать ровно одну запись запроса.
// io.EOF — чистое закрытие на границе записей; io.ErrUnexpectedEOF — обрыв
// посреди записи. И то и другое для обработчика означает конец соединения.
func (c *Codec) ReadRequest(r io.Reader) (*domain.ClientRequest, error) {
	buf := make([]byte, c.RequestSize())
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if buf[0] != Version {
		return nil, fmt.Errorf("%w: got 0x%02x", ErrVersionMismatch, buf[0])
	}

	req := &domain.ClientRequest{
		ClientID: int32(binary.BigEndian.Uint32(buf[1:5])),
		Orders:   make([]domain.LineItem, c.ordersPerBatch),
	}
	off := 5
	for i := range req.Orders {
		req.Orders[i].ProductID = int32(binary.BigEndian.Uint32(buf[off : off+4]))
		req.Orders[i].Quantity = int32(binary.BigEndian.Uint32(buf[off+4 : off+8]))
		off += 8
	}
	return req, nil
}

// WriteRequest — записать одну запись запроса. Недостающие до K позиции
// заполняются нулями (quantity=0 — сервер их молча пропустит).
func (c *Codec) WriteRequest(w io.Writer, req *domain.ClientRequest) error {
	if len(req.Orders) > c.ordersPerBatch {
		return fmt.Errorf("%w: %d > %d", ErrBatchOverflow, len(req.Orders), c.ordersPerBatch)
	}

	buf := make([]byte, c.RequestSize())
	buf[0] = Version
	binary.BigEndian.PutUint32(buf[1:5], uint32(req.ClientID))
	off := 5
	for _, item := range req.Orders {
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(item.ProductID))
		binary.BigEndian.PutUint32(buf[off+4:off+8], uint32(item.Quantity))
		off += 8
	}

	_, err := w.Write(buf)
	return err
}

// ReadResponse — прочитать ровно одну запись ответа.
func (c *Codec) ReadResponse(r io.Reader) (domain.BatchResult, error) {
	buf := make([]byte, c.ResponseSize())
	if _, err := io.ReadFull(r, buf); err != nil {
		return domain.BatchResult{}, err
	}
	if buf[0] != Version {
		return domain.BatchResult{}, fmt.Errorf("%w: got 0x%02x", ErrVersionMismatch, buf[0])
	}

	msg := buf[2 : 2+MessageSize]
	if i := bytes.IndexByte(msg, 0); i >= 0 {
		msg = msg[:i]
	}

	return domain.BatchResult{
		Success:         buf[1] != 0,
		Message:         string(msg),
		TotalPriceCents: int64(binary.BigEndian.Uint64(buf[2+MessageSize:])),
	}, nil
}

// WriteResponse — записать одну запись ответа.
// Сообщение длиннее MessageSize обрезается: поле ограниченной ширины.
func (c *Codec) WriteResponse(w io.Writer, res domain.BatchResult) error {
	buf := make([]byte, c.ResponseSize())
	buf[0] = Version
	if res.Success {
		buf[1] = 1
	}
	copy(buf[2:2+MessageSize], res.Message)
	binary.BigEndian.PutUint64(buf[2+MessageSize:], uint64(res.TotalPriceCents))

	_, err := w.Write(buf)
	return err
}
