// Package middleware содержит HTTP middleware: аутентификация по
// заголовкам, request id и сбор метрик запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
)

const (
	headerTenantID = "X-Tenant-ID"
	headerUserID   = "X-User-ID"

	msgMissingTenantID = "отсутствует или некорректен заголовок X-Tenant-ID"
	msgMissingUserID   = "отсутствует или некорректен заголовок X-User-ID"
)

type contextKey string

const (
	tenantIDKey contextKey = "tenantID"
	userIDKey   contextKey = "userID"
)

// Auth извлекает идентификацию запроса из заголовков и кладет в context
// Идентификацию проставляет API gateway; сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := strconv.ParseInt(r.Header.Get(headerTenantID), 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID возвращает ID тенанта из контекста запроса
func GetTenantID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(tenantIDKey).(int64)
	return id, ok
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
