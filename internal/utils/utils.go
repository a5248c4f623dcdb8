// Package utils - вспомогательные функции: время, подписи, сетевые ошибки.
package utils

import (
	"errors"
	"net"
)

// IsNetworkError сообщает, что ошибка пришла из сетевого уровня.
func IsNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsTimeout сообщает, что сетевая операция завершилась по таймауту.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
