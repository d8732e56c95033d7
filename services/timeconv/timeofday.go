package timeconv

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay время суток без даты и зоны
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTimeOfDay разбирает строку вида HH:MM или HH:MM:SS.
// Секунды по умолчанию равны 0.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	value := strings.TrimSpace(raw)
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, invalidInput(ReasonTimeFormat, raw, fmt.Errorf("expected HH:MM or HH:MM:SS, got %d components", len(parts)))
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return TimeOfDay{}, invalidInput(ReasonTimeFormat, raw, err)
		}
		values[i] = n
	}

	tod := TimeOfDay{Hour: values[0], Minute: values[1], Second: values[2]}
	switch {
	case tod.Hour < 0 || tod.Hour >= 24:
		return TimeOfDay{}, invalidInput(ReasonTimeOutOfRange, raw, fmt.Errorf("hour %d not in [0,24)", tod.Hour))
	case tod.Minute < 0 || tod.Minute >= 60:
		return TimeOfDay{}, invalidInput(ReasonTimeOutOfRange, raw, fmt.Errorf("minute %d not in [0,60)", tod.Minute))
	case tod.Second < 0 || tod.Second >= 60:
		return TimeOfDay{}, invalidInput(ReasonTimeOutOfRange, raw, fmt.Errorf("second %d not in [0,60)", tod.Second))
	}
	return tod, nil
}
