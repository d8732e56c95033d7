package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/esemashko/v2-service-time/utils"

	"go.uber.org/zap"
)

// RecoverMiddleware превращает панику обработчика в JSON-ответ 500
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil || rec == http.ErrAbortHandler {
				if rec != nil {
					panic(rec)
				}
				return
			}
			utils.Logger.Error("Panic in HTTP handler",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("path", r.URL.Path),
				zap.String("panic", fmt.Sprint(rec)),
				zap.Stack("stack"),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"detail": utils.T(r.Context(), "error.internal"),
				"code":   "internal_error",
			})
		}()

		next.ServeHTTP(w, r)
	})
}
