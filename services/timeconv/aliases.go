package timeconv

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/esemashko/v2-service-time/utils"

	"github.com/hashicorp/go-multierror"
)

// AliasTable неизменяемая таблица "имя города -> идентификатор IANA".
// Ключи хранятся в нижнем регистре без пробелов по краям.
type AliasTable struct {
	zones       map[string]string
	cityAliases []string
}

// defaultAliases строится один раз при старте процесса
var defaultAliases = MustBuildAliasTable(utils.GetAvailableTimezones())

// DefaultAliases возвращает таблицу, построенную из каталога utils.GetAvailableTimezones
func DefaultAliases() *AliasTable {
	return defaultAliases
}

// NormalizeAlias приводит имя к виду ключа таблицы
func NormalizeAlias(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildAliasTable строит таблицу из каталога. Если одно имя указывает на
// разные зоны, возвращаются все такие конфликты сразу.
func BuildAliasTable(entries []utils.TimezoneInfo) (*AliasTable, error) {
	zones := make(map[string]string)
	var result *multierror.Error

	for _, entry := range entries {
		for _, name := range entry.Names() {
			key := NormalizeAlias(name)
			if key == "" {
				continue
			}
			if existing, ok := zones[key]; ok {
				if existing != entry.ID {
					result = multierror.Append(result, fmt.Errorf("alias %q maps to both %s and %s", key, existing, entry.ID))
				}
				continue
			}
			zones[key] = entry.ID
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	cityAliases := make([]string, 0, len(zones))
	for key := range zones {
		// Ключи с "/" сами являются идентификаторами IANA, в подсказку не идут
		if !strings.Contains(key, "/") {
			cityAliases = append(cityAliases, key)
		}
	}
	sort.Strings(cityAliases)

	return &AliasTable{zones: zones, cityAliases: cityAliases}, nil
}

// MustBuildAliasTable как BuildAliasTable, но паникует при ошибке
func MustBuildAliasTable(entries []utils.TimezoneInfo) *AliasTable {
	table, err := BuildAliasTable(entries)
	if err != nil {
		panic(err)
	}
	return table
}

// Lookup ищет зону по имени без учета регистра и пробелов по краям
func (t *AliasTable) Lookup(name string) (string, bool) {
	zone, ok := t.zones[NormalizeAlias(name)]
	return zone, ok
}

// Len количество ключей
func (t *AliasTable) Len() int {
	return len(t.zones)
}

// Keys все ключи таблицы в отсортированном порядке
func (t *AliasTable) Keys() []string {
	keys := make([]string, 0, len(t.zones))
	for key := range t.zones {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CityAliases ключи, не похожие на идентификаторы IANA (без "/")
func (t *AliasTable) CityAliases() []string {
	out := make([]string, len(t.cityAliases))
	copy(out, t.cityAliases)
	return out
}

// Entries копия таблицы в виде map
func (t *AliasTable) Entries() map[string]string {
	out := make(map[string]string, len(t.zones))
	for key, zone := range t.zones {
		out[key] = zone
	}
	return out
}

// ZoneLoader загружает зону по идентификатору IANA
type ZoneLoader interface {
	Load(name string) (*time.Location, error)
}

// Validate проверяет, что каждая зона таблицы загружается
func (t *AliasTable) Validate(loader ZoneLoader) error {
	checked := make(map[string]bool)
	var result *multierror.Error

	for _, key := range t.Keys() {
		zone := t.zones[key]
		if checked[zone] {
			continue
		}
		checked[zone] = true
		if _, err := loader.Load(zone); err != nil {
			result = multierror.Append(result, fmt.Errorf("alias %q: %w", key, err))
		}
	}
	return result.ErrorOrNil()
}
