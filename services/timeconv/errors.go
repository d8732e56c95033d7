package timeconv

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind класс ошибки конвертации
type ErrorKind string

const (
	KindInvalidInput                ErrorKind = "invalid_input"
	KindUnknownTimezone             ErrorKind = "unknown_timezone"
	KindTimezoneDatabaseUnavailable ErrorKind = "timezone_database_unavailable"
	KindInternal                    ErrorKind = "internal_error"
)

// HTTPStatus код ответа для класса ошибки
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindUnknownTimezone:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Reason уточняет, что именно не так с входными данными
type Reason string

const (
	ReasonTimeFormat       Reason = "time_format"
	ReasonTimeOutOfRange   Reason = "time_out_of_range"
	ReasonTimezoneRequired Reason = "timezone_required"
)

// Error ошибка конвертации времени
type Error struct {
	Kind ErrorKind
	// Reason заполняется только для KindInvalidInput
	Reason Reason
	// Input исходное значение, вызвавшее ошибку
	Input string
	// KnownAliases подсказка для KindUnknownTimezone
	KnownAliases []string
	Err          error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		if e.Err != nil {
			return fmt.Sprintf("invalid input %q (%s): %v", e.Input, e.Reason, e.Err)
		}
		return fmt.Sprintf("invalid input %q (%s)", e.Input, e.Reason)
	case KindUnknownTimezone:
		return fmt.Sprintf("unknown timezone %q", e.Input)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf возвращает класс ошибки; ошибки не из этого пакета считаются внутренними
func KindOf(err error) ErrorKind {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	return KindInternal
}

func invalidInput(reason Reason, input string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Reason: reason, Input: input, Err: err}
}
