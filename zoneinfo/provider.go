// Package zoneinfo загружает часовые пояса из базы IANA и умеет сообщать,
// доступна ли сама база. Отсутствие базы и неизвестное имя зоны
// это разные ошибки, их не нужно угадывать по тексту.
package zoneinfo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Встроенная копия базы tzdata на случай, если в системе ее нет
	_ "time/tzdata"
)

// probeZone зона, которой нет без базы tzdata (в отличие от "UTC")
const probeZone = "Etc/UTC"

var (
	// ErrDatabaseUnavailable база часовых поясов не найдена или повреждена
	ErrDatabaseUnavailable = errors.New("timezone database is unavailable")
	// ErrUnknownZone имя не является известным идентификатором IANA
	ErrUnknownZone = errors.New("unknown time zone")
)

// LoaderFunc загружает зону по имени, по умолчанию time.LoadLocation
type LoaderFunc func(name string) (*time.Location, error)

// Provider загружает зоны и хранит результат проверки базы.
// После создания не изменяется и безопасен для конкурентного использования.
type Provider struct {
	load     LoaderFunc
	probeErr error
}

// Option настраивает Provider
type Option func(*Provider)

// WithLoader подменяет загрузчик зон
func WithLoader(fn LoaderFunc) Option {
	return func(p *Provider) {
		p.load = fn
	}
}

// NewProvider создает Provider и сразу проверяет доступность базы
func NewProvider(opts ...Option) *Provider {
	p := &Provider{load: time.LoadLocation}
	for _, opt := range opts {
		opt(p)
	}
	if _, err := p.load(probeZone); err != nil {
		p.probeErr = fmt.Errorf("%w: probe %s: %v", ErrDatabaseUnavailable, probeZone, err)
	}
	return p
}

// Available возвращает nil, если база часовых поясов доступна
func (p *Provider) Available() error {
	return p.probeErr
}

// Load возвращает зону по идентификатору IANA.
// Пустое имя и "Local" не считаются идентификаторами IANA.
func (p *Provider) Load(name string) (*time.Location, error) {
	if p.probeErr != nil {
		return nil, p.probeErr
	}
	if strings.TrimSpace(name) == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	loc, err := p.load(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
	}
	return loc, nil
}
