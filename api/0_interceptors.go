package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fulldump/box"
	"go.uber.org/zap"
)

func RecoverFromPanic(logger *zap.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic", zap.Any("recovered", err), zap.Stack("stack"))
					box.SetError(ctx, fmt.Errorf("panic: %v", err))
				}
			}()
			next(ctx)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func AccessLog(logger *zap.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			c := box.GetBoxContext(ctx)
			recorder := &statusRecorder{ResponseWriter: c.Response}
			c.Response = recorder

			now := time.Now()
			defer func() {
				logger.Info("access",
					zap.String("remote", formatRemoteAddr(r)),
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
					zap.Int("status", recorder.status),
					zap.Duration("took", time.Since(now)),
				)
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[:i]
}

// Authenticate requires X-Api-Key and X-Api-Secret headers. With an empty key
// and secret every request passes.
func Authenticate(apiKey, apiSecret string) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			if apiKey == "" && apiSecret == "" {
				next(ctx)
				return
			}

			r := box.GetRequest(ctx)
			keyOk := subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Api-Key")), []byte(apiKey)) == 1
			secretOk := subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Api-Secret")), []byte(apiSecret)) == 1
			if !keyOk || !secretOk {
				box.SetError(ctx, ErrUnauthorized)
				return
			}

			next(ctx)
		}
	}
}
