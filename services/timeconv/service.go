// Package timeconv переводит время суток UTC в местное время города или зоны IANA.
package timeconv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/esemashko/v2-service-time/clock"
	"github.com/esemashko/v2-service-time/utils"
	"github.com/esemashko/v2-service-time/zoneinfo"

	"go.uber.org/zap"
)

const (
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
	isoLayout      = "2006-01-02T15:04:05-07:00"
	offsetLayout   = "-0700"
)

// ResolutionSource каким шагом найдена зона
type ResolutionSource int

const (
	SourceAlias ResolutionSource = iota + 1
	SourceIANA
)

func (s ResolutionSource) String() string {
	switch s {
	case SourceAlias:
		return "alias"
	case SourceIANA:
		return "iana"
	default:
		return "unknown"
	}
}

// Resolution результат поиска зоны
type Resolution struct {
	Location *time.Location
	Source   ResolutionSource
}

// stageOutcome исход одного шага поиска зоны
type stageOutcome int

const (
	stageMiss stageOutcome = iota
	stageHit
	stageFailed
)

type stageResult struct {
	outcome  stageOutcome
	location *time.Location
	err      error
}

// ConversionResult результат конвертации. Все поля получены из одного момента времени.
type ConversionResult struct {
	UTCTime       string `json:"utc_time"`
	UTCISO        string `json:"utc_iso"`
	Timezone      string `json:"timezone"`
	LocalTime     string `json:"local_time"`
	LocalDateTime string `json:"local_datetime"`
	LocalISO      string `json:"local_iso"`
	UTCOffset     string `json:"utc_offset"`

	UTC    time.Time        `json:"-"`
	Local  time.Time        `json:"-"`
	Source ResolutionSource `json:"-"`
}

// Service конвертирует время. Не хранит изменяемого состояния.
type Service struct {
	clock   clock.Clock
	zones   ZoneLoader
	aliases *AliasTable
}

// NewService создает сервис. Если aliases == nil, используется DefaultAliases.
func NewService(clk clock.Clock, zones ZoneLoader, aliases *AliasTable) *Service {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Service{clock: clk, zones: zones, aliases: aliases}
}

// Aliases таблица синонимов сервиса
func (s *Service) Aliases() *AliasTable {
	return s.aliases
}

// Convert переводит время суток rawTime (UTC, текущая дата) в зону rawZone.
// Время проверяется до поиска зоны.
func (s *Service) Convert(ctx context.Context, rawTime, rawZone string) (*ConversionResult, error) {
	tod, err := ParseTimeOfDay(rawTime)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawZone) == "" {
		return nil, invalidInput(ReasonTimezoneRequired, rawZone, nil)
	}

	resolution, err := s.Resolve(rawZone)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	utc := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, tod.Second, 0, time.UTC)
	local := utc.In(resolution.Location)

	utils.Logger.Debug("Time converted",
		zap.String("time", tod.String()),
		zap.String("timezone", resolution.Location.String()),
		zap.Stringer("source", resolution.Source),
	)

	return &ConversionResult{
		UTCTime:       utc.Format(timeLayout),
		UTCISO:        utc.Format(isoLayout),
		Timezone:      resolution.Location.String(),
		LocalTime:     local.Format(timeLayout),
		LocalDateTime: local.Format(dateTimeLayout),
		LocalISO:      local.Format(isoLayout),
		UTCOffset:     local.Format(offsetLayout),
		UTC:           utc,
		Local:         local,
		Source:        resolution.Source,
	}, nil
}

// Resolve находит зону: сначала по таблице синонимов, затем как идентификатор IANA
func (s *Service) Resolve(rawZone string) (Resolution, error) {
	if res := s.resolveAlias(rawZone); res.outcome != stageMiss {
		return finish(res, SourceAlias)
	}
	if res := s.resolveIANA(rawZone); res.outcome != stageMiss {
		return finish(res, SourceIANA)
	}
	return Resolution{}, &Error{
		Kind:         KindUnknownTimezone,
		Input:        rawZone,
		KnownAliases: s.aliases.CityAliases(),
	}
}

func finish(res stageResult, source ResolutionSource) (Resolution, error) {
	if res.outcome == stageFailed {
		return Resolution{}, res.err
	}
	return Resolution{Location: res.location, Source: source}, nil
}

func (s *Service) resolveAlias(rawZone string) stageResult {
	zone, ok := s.aliases.Lookup(rawZone)
	if !ok {
		return stageResult{outcome: stageMiss}
	}
	loc, err := s.zones.Load(zone)
	if err == nil {
		return stageResult{outcome: stageHit, location: loc}
	}
	if errors.Is(err, zoneinfo.ErrDatabaseUnavailable) {
		return stageResult{outcome: stageFailed, err: &Error{Kind: KindTimezoneDatabaseUnavailable, Input: rawZone, Err: err}}
	}
	// Синоним указывает на зону, которой нет в базе: это ошибка таблицы, а не запроса
	return stageResult{outcome: stageFailed, err: &Error{Kind: KindInternal, Input: rawZone, Err: err}}
}

func (s *Service) resolveIANA(rawZone string) stageResult {
	loc, err := s.zones.Load(strings.TrimSpace(rawZone))
	switch {
	case err == nil:
		return stageResult{outcome: stageHit, location: loc}
	case errors.Is(err, zoneinfo.ErrDatabaseUnavailable):
		return stageResult{outcome: stageFailed, err: &Error{Kind: KindTimezoneDatabaseUnavailable, Input: rawZone, Err: err}}
	case errors.Is(err, zoneinfo.ErrUnknownZone):
		return stageResult{outcome: stageMiss}
	default:
		return stageResult{outcome: stageFailed, err: &Error{Kind: KindInternal, Input: rawZone, Err: err}}
	}
}
