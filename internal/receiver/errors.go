package receiver

import (
	"fmt"
	"net/http"
)

// ProtocolError - запрос не удовлетворяет контракту приёмника
// (нет Content-Length, тело больше лимита или короче заявленного).
type ProtocolError struct {
	Err    error
	Reason string
	Status int
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d %s): %v", e.Reason, e.Status, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("%s (%d %s)", e.Reason, e.Status, http.StatusText(e.Status))
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
