package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHmacSHA256 возвращает hex HMAC-SHA256 данных по ключу.
func ComputeHmacSHA256(data []byte, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHmacSHA256 сравнивает подпись за постоянное время.
func VerifyHmacSHA256(data []byte, key, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hmac.Equal(h.Sum(nil), expected)
}
