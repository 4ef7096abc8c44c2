package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/metrics"
)

// identity is filled in by WithUser so interceptors wrapping authentication
// can see who made the call.
type identity struct {
	username string
}

const identityKey contextKey = "identity"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records it in m. It logs the procedure name, username, duration, and
// any error codes/messages. m may be nil.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			who := &identity{username: GetUsername(ctx)}

			resp, err := next(context.WithValue(ctx, identityKey, who), req)

			elapsed := time.Since(start)
			username := who.username
			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"username", username,
						"duration_ms", elapsed.Milliseconds(),
					)
				} else {
					code = connect.CodeUnknown.String()
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"username", username,
						"duration_ms", elapsed.Milliseconds(),
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"username", username,
					"duration_ms", elapsed.Milliseconds(),
				)
			}
			m.ObserveRPC(procedure, code, elapsed)

			return resp, err
		}
	}
}
