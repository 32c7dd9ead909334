// Пакет ctxmeta — нейтральный слой для метаданных, прокидываемых через
// context.Context: request_id диагностического HTTP и conn_id клиентского
// соединения. Транспорт и логика зависят от небольшого общего пакета,
// но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyConnID    ctxKey = "conn_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithConnID кладёт идентификатор клиентского соединения в контекст.
func WithConnID(ctx context.Context, connID string) context.Context {
	if ctx == nil || connID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyConnID, connID)
}

// ConnIDFromContext достаёт идентификатор соединения из контекста.
func ConnIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyConnID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
