package utils

import (
	"fmt"
	"time"
)

// TimezoneInfo содержит информацию о городе и его часовом поясе
type TimezoneInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NativeName  string   `json:"native_name,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Region      string   `json:"region"`
	CountryCode string   `json:"country_code"` // ISO 3166-1 alpha-2 country code
}

// Names возвращает все имена, под которыми город известен
func (tz TimezoneInfo) Names() []string {
	names := make([]string, 0, len(tz.Aliases)+3)
	names = append(names, tz.Name)
	if tz.NativeName != "" {
		names = append(names, tz.NativeName)
	}
	names = append(names, tz.Aliases...)
	return append(names, tz.ID)
}

var availableTimezones = []TimezoneInfo{
	// Стандартные
	{ID: "UTC", Name: "UTC", Aliases: []string{"gmt", "utc+0"}, Region: "Universal", CountryCode: "UN"},

	// Россия
	{ID: "Europe/Kaliningrad", Name: "Kaliningrad", NativeName: "Калининград", Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Moscow", Name: "Moscow", NativeName: "Москва", Aliases: []string{"msk", "мск", "moskva"}, Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Moscow", Name: "Saint Petersburg", NativeName: "Санкт-Петербург", Aliases: []string{"st petersburg", "st. petersburg", "saint-petersburg", "petersburg", "spb", "петербург", "питер", "спб"}, Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Moscow", Name: "Kazan", NativeName: "Казань", Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Moscow", Name: "Nizhny Novgorod", NativeName: "Нижний Новгород", Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Moscow", Name: "Sochi", NativeName: "Сочи", Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Samara", Name: "Samara", NativeName: "Самара", Region: "Europe", CountryCode: "RU"},
	{ID: "Europe/Volgograd", Name: "Volgograd", NativeName: "Волгоград", Region: "Europe", CountryCode: "RU"},
	{ID: "Asia/Yekaterinburg", Name: "Ekaterinburg", NativeName: "Екатеринбург", Aliases: []string{"yekaterinburg", "ekb", "екб"}, Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Yekaterinburg", Name: "Chelyabinsk", NativeName: "Челябинск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Yekaterinburg", Name: "Perm", NativeName: "Пермь", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Yekaterinburg", Name: "Ufa", NativeName: "Уфа", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Omsk", Name: "Omsk", NativeName: "Омск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Novosibirsk", Name: "Novosibirsk", NativeName: "Новосибирск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Krasnoyarsk", Name: "Krasnoyarsk", NativeName: "Красноярск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Irkutsk", Name: "Irkutsk", NativeName: "Иркутск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Yakutsk", Name: "Yakutsk", NativeName: "Якутск", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Vladivostok", Name: "Vladivostok", NativeName: "Владивосток", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Magadan", Name: "Magadan", NativeName: "Магадан", Region: "Asia", CountryCode: "RU"},
	{ID: "Asia/Kamchatka", Name: "Petropavlovsk-Kamchatsky", NativeName: "Петропавловск-Камчатский", Aliases: []string{"kamchatka", "камчатка"}, Region: "Asia", CountryCode: "RU"},

	// Европа
	{ID: "Europe/London", Name: "London", NativeName: "Лондон", Region: "Europe", CountryCode: "GB"},
	{ID: "Europe/Paris", Name: "Paris", NativeName: "Париж", Region: "Europe", CountryCode: "FR"},
	{ID: "Europe/Rome", Name: "Rome", NativeName: "Рим", Region: "Europe", CountryCode: "IT"},
	{ID: "Europe/Madrid", Name: "Madrid", NativeName: "Мадрид", Region: "Europe", CountryCode: "ES"},
	{ID: "Europe/Minsk", Name: "Minsk", NativeName: "Минск", Region: "Europe", CountryCode: "BY"},
	{ID: "Europe/Kyiv", Name: "Kyiv", NativeName: "Киев", Aliases: []string{"kiev"}, Region: "Europe", CountryCode: "UA"},
	{ID: "Europe/Istanbul", Name: "Istanbul", NativeName: "Стамбул", Region: "Europe", CountryCode: "TR"},

	// Азия
	{ID: "Asia/Almaty", Name: "Almaty", NativeName: "Алматы", Aliases: []string{"alma-ata", "алма-ата"}, Region: "Asia", CountryCode: "KZ"},
	{ID: "Asia/Tashkent", Name: "Tashkent", NativeName: "Ташкент", Region: "Asia", CountryCode: "UZ"},
	{ID: "Asia/Tbilisi", Name: "Tbilisi", NativeName: "Тбилиси", Region: "Asia", CountryCode: "GE"},
	{ID: "Asia/Yerevan", Name: "Yerevan", NativeName: "Ереван", Region: "Asia", CountryCode: "AM"},
	{ID: "Asia/Baku", Name: "Baku", NativeName: "Баку", Region: "Asia", CountryCode: "AZ"},
	{ID: "Asia/Dubai", Name: "Dubai", NativeName: "Дубай", Region: "Asia", CountryCode: "AE"},
	{ID: "Asia/Kolkata", Name: "New Delhi", NativeName: "Нью-Дели", Aliases: []string{"delhi", "дели"}, Region: "Asia", CountryCode: "IN"},
	{ID: "Asia/Shanghai", Name: "Beijing", NativeName: "Пекин", Aliases: []string{"shanghai", "шанхай"}, Region: "Asia", CountryCode: "CN"},
	{ID: "Asia/Tokyo", Name: "Tokyo", NativeName: "Токио", Region: "Asia", CountryCode: "JP"},

	// Америка
	{ID: "America/New_York", Name: "New York", NativeName: "Нью-Йорк", Aliases: []string{"nyc"}, Region: "America", CountryCode: "US"},
	{ID: "America/Chicago", Name: "Chicago", NativeName: "Чикаго", Region: "America", CountryCode: "US"},
	{ID: "America/Los_Angeles", Name: "Los Angeles", NativeName: "Лос-Анджелес", Aliases: []string{"la"}, Region: "America", CountryCode: "US"},
	{ID: "America/Sao_Paulo", Name: "Sao Paulo", NativeName: "Сан-Паулу", Region: "America", CountryCode: "BR"},

	// Океания и Австралия
	{ID: "Australia/Sydney", Name: "Sydney", NativeName: "Сидней", Region: "Australia", CountryCode: "AU"},
	{ID: "Pacific/Auckland", Name: "Auckland", NativeName: "Окленд", Region: "Pacific", CountryCode: "NZ"},

	// Африка
	{ID: "Africa/Cairo", Name: "Cairo", NativeName: "Каир", Region: "Africa", CountryCode: "EG"},
}

// GetAvailableTimezones возвращает копию списка известных городов
func GetAvailableTimezones() []TimezoneInfo {
	out := make([]TimezoneInfo, len(availableTimezones))
	copy(out, availableTimezones)
	return out
}

// FormatUTCOffset возвращает смещение момента t в формате "UTC+5", "UTC-3:30" или "UTC+0"
func FormatUTCOffset(t time.Time) string {
	_, offset := t.Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60

	// Добавляем минуты только если они не нулевые
	if minutes != 0 {
		return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("UTC%s%d", sign, hours)
}
