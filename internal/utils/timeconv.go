package utils

import "time"

// TimeToMillis переводит календарное время в миллисекунды от эпохи (UTC).
// Микро- и наносекунды отбрасываются (floor), а не округляются:
// 12:00:00.0019 и 12:00:00.001 дают одно и то же значение.
func TimeToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// DateToMillis собирает время в UTC из компонент и переводит в миллисекунды.
func DateToMillis(year int, month time.Month, day, hour, min, sec, nsec int) int64 {
	return TimeToMillis(time.Date(year, month, day, hour, min, sec, nsec, time.UTC))
}

// MillisToTime - обратное преобразование для целых миллисекунд.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// NowMillis возвращает текущее время в миллисекундах.
func NowMillis() int64 {
	return TimeToMillis(time.Now())
}
