package receiver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Router struct {
	chi.Router
	logger *logrus.Logger
}

func NewRouter(logger *logrus.Logger) *Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))

	return &Router{
		Router: r,
		logger: logger,
	}
}

// SetupRoutes принимает POST на любой путь. Остальные методы получают
// ответ chi по умолчанию (405).
func (r *Router) SetupRoutes(h *NotificationHandler) {
	r.Post("/", h.NotifyHandler)
	r.Post("/*", h.NotifyHandler)
}
