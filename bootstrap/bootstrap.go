package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"
	"go.uber.org/zap"

	"github.com/fulldump/dataform/api"
	"github.com/fulldump/dataform/configuration"
	"github.com/fulldump/dataform/service"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration, logger *zap.Logger) (start, stop func(), err error) {

	if logger == nil {
		logger = zap.NewNop()
	}

	s := service.NewService(&service.Config{
		Filename:      c.Filename,
		Journal:       c.Journal,
		AtomicRewrite: c.AtomicRewrite,
	}, logger)

	b := Handler(s, c, logger)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen '%s': %w", c.HttpAddr, err)
	}
	logger.Info("listening", zap.String("addr", ln.Addr().String()))

	stopOnce := &sync.Once{}
	stop = func() {
		stopOnce.Do(func() {
			s.Stop()
			err := server.Shutdown(context.Background())
			if err != nil {
				logger.Error("shutdown", zap.Error(err))
			}
		})
	}

	start = func() {

		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(signalChan)

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case sig := <-signalChan:
				logger.Info("signal received", zap.String("signal", sig.String()))
				stop()
			case <-done:
			}
		}()

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Load()
			if err != nil {
				logger.Error("load records", zap.Error(err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := server.Serve(ln)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("serve", zap.Error(err))
			}
		}()

		wg.Wait()
	}

	return
}

// Handler builds the api with the interceptors the daemon runs with.
func Handler(s *service.Service, c *configuration.Configuration, logger *zap.Logger) *box.B {

	b := api.Build(s, VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(logger),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic(logger),
		api.InterceptorUnavailable(s),
	)

	return b
}
