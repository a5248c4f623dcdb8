// Package receiver - приёмник уведомлений об алертах: один HTTP-эндпоинт,
// который принимает тело POST-запроса и показывает его оператору.
package receiver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/config"
)

type Server struct {
	cfg    config.ReceiverConfig
	router *Router
	server *http.Server
	logger *logrus.Logger
}

func NewServer(cfg config.ReceiverConfig, sink PayloadSink, logger *logrus.Logger) *Server {
	router := NewRouter(logger)
	router.SetupRoutes(NewNotificationHandler(sink, cfg.MaxBodyBytes, cfg.Key, logger))

	return &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:    cfg.Address(),
			Handler: router,
		},
	}
}

// Handler возвращает http.Handler приёмника (для тестов и встраивания).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start блокируется до остановки сервера. После Shutdown возвращает nil.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return err
	}
	return s.Serve(l)
}

func (s *Server) Serve(l net.Listener) error {
	s.logger.Infoln("Receiver listened address: ", l.Addr().String())

	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
