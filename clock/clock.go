package clock

import "time"

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// System возвращает системное время в локальной зоне сервера
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed всегда возвращает одно и то же время. Используется в тестах.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
