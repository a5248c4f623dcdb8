package receiver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/utils"
)

const signatureHeader = "HashSHA256"

// NotificationHandler принимает POST с уведомлением, читает ровно
// Content-Length байт, отдаёт их приёмнику и отвечает 200 без тела.
// Запросы обрабатываются строго по одному.
type NotificationHandler struct {
	mu      sync.Mutex
	sink    PayloadSink
	logger  *logrus.Logger
	key     string
	maxBody int64
}

// NewNotificationHandler создаёт обработчик. Неположительный maxBody
// заменяется на config.DefaultMaxBodyBytes: без предела тело не читается.
func NewNotificationHandler(sink PayloadSink, maxBody int64, key string, logger *logrus.Logger) *NotificationHandler {
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}
	return &NotificationHandler{
		sink:    sink,
		logger:  logger,
		key:     key,
		maxBody: maxBody,
	}
}

func (h *NotificationHandler) NotifyHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	body, err := h.readBody(r)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	if h.key != "" {
		if sig := r.Header.Get(signatureHeader); sig != "" && !utils.VerifyHmacSHA256(body, h.key, sig) {
			h.reject(w, r, &ProtocolError{Status: http.StatusBadRequest, Reason: "invalid payload signature"})
			return
		}
	}

	n := Notification{
		ReceivedAt:  time.Now().UTC(),
		Method:      r.Method,
		Path:        r.URL.Path,
		RemoteAddr:  r.RemoteAddr,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   middleware.GetReqID(r.Context()),
		Body:        body,
	}
	if err := h.sink.Expose(r.Context(), n); err != nil {
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("failed to expose notification")
		http.Error(w, "failed to expose notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) readBody(r *http.Request) ([]byte, error) {
	if r.ContentLength < 0 {
		return nil, &ProtocolError{Status: http.StatusLengthRequired, Reason: "Content-Length header is required"}
	}
	if r.ContentLength > h.maxBody {
		return nil, &ProtocolError{
			Status: http.StatusRequestEntityTooLarge,
			Reason: fmt.Sprintf("Content-Length %d exceeds limit %d", r.ContentLength, h.maxBody),
		}
	}

	body := make([]byte, r.ContentLength)
	if _, err := io.ReadFull(r.Body, body); err != nil {
		return nil, &ProtocolError{Status: http.StatusBadRequest, Reason: "body shorter than Content-Length", Err: err}
	}
	return body, nil
}

func (h *NotificationHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	reason := err.Error()

	var pErr *ProtocolError
	if errors.As(err, &pErr) {
		status = pErr.Status
		reason = pErr.Reason
	}

	h.logger.WithError(err).WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"remote": r.RemoteAddr,
		"status": status,
	}).Warn("notification rejected")
	http.Error(w, reason, status)
}
