// check_translations сверяет ключи utils.T в коде с файлами locales/*.json.
//
//	go run ./tools/check_translations -path .
package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// LocaleMap вложенная структура JSON-файла локализации
type LocaleMap map[string]interface{}

// utils.T(ctx, "key") и utils.T(ctx, "key", data)
var translationCallRegex = regexp.MustCompile(`utils\.T\s*\(\s*[^,]+,\s*"([^"]+)"`)

// Report результат проверки
type Report struct {
	Missing map[string][]string // язык -> ключи из кода, которых нет в файле
	Unused  map[string][]string // язык -> ключи файла, которые не используются
	Used    []string
}

// HasErrors сообщает, есть ли отсутствующие переводы
func (r *Report) HasErrors() bool {
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	var (
		rootPath string
		strict   bool
	)
	flag.StringVar(&rootPath, "path", ".", "Project root path")
	flag.BoolVar(&strict, "strict", false, "Fail on unused keys too")
	flag.Parse()

	locales, err := loadLocales(filepath.Join(rootPath, "locales"))
	if err != nil {
		fmt.Printf("Failed to load locales: %v\n", err)
		os.Exit(1)
	}

	used, err := findTranslationKeys(rootPath)
	if err != nil {
		fmt.Printf("Error finding translation keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d translation keys in the code\n", len(used))

	report := buildReport(used, locales)
	printReport(report)

	hasUnused := false
	for _, keys := range report.Unused {
		hasUnused = hasUnused || len(keys) > 0
	}
	if report.HasErrors() || (strict && hasUnused) {
		os.Exit(1)
	}
}

// loadLocales читает все <lang>.json из каталога
func loadLocales(dir string) (map[string]LocaleMap, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files in %s", dir)
	}

	result := make(map[string]LocaleMap, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var localeMap LocaleMap
		if err := json.Unmarshal(data, &localeMap); err != nil {
			return nil, fmt.Errorf("failed to parse JSON in %s: %w", file, err)
		}
		lang := strings.TrimSuffix(filepath.Base(file), ".json")
		result[lang] = localeMap
	}
	return result, nil
}

// flattenKeys возвращает ключи вложенной карты в виде "a.b.c"
func flattenKeys(localeMap LocaleMap, prefix string) []string {
	var result []string
	for key, value := range localeMap {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			result = append(result, flattenKeys(LocaleMap(nested), fullKey)...)
			continue
		}
		result = append(result, fullKey)
	}
	sort.Strings(result)
	return result
}

// findTranslationKeys ищет ключи utils.T во всех .go файлах, кроме тестов и tools/
func findTranslationKeys(rootPath string) ([]string, error) {
	keys := make(map[string]bool)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "tools", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(string(content), "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}
			for _, match := range translationCallRegex.FindAllStringSubmatch(line, -1) {
				keys[match[1]] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(keys))
	for key := range keys {
		result = append(result, key)
	}
	sort.Strings(result)
	return result, nil
}

func buildReport(used []string, locales map[string]LocaleMap) *Report {
	report := &Report{
		Missing: make(map[string][]string),
		Unused:  make(map[string][]string),
		Used:    used,
	}

	usedSet := make(map[string]bool, len(used))
	for _, key := range used {
		usedSet[key] = true
	}

	for lang, localeMap := range locales {
		present := make(map[string]bool)
		for _, key := range flattenKeys(localeMap, "") {
			present[key] = true
			if !usedSet[key] {
				report.Unused[lang] = append(report.Unused[lang], key)
			}
		}
		for _, key := range used {
			if !present[key] {
				report.Missing[lang] = append(report.Missing[lang], key)
			}
		}
	}
	return report
}

func printReport(report *Report) {
	langs := make([]string, 0, len(report.Missing)+len(report.Unused))
	seen := make(map[string]bool)
	for lang := range report.Missing {
		if !seen[lang] {
			langs = append(langs, lang)
			seen[lang] = true
		}
	}
	for lang := range report.Unused {
		if !seen[lang] {
			langs = append(langs, lang)
			seen[lang] = true
		}
	}
	sort.Strings(langs)

	fmt.Println("\n=== RESULTS ===")
	if !report.HasErrors() {
		fmt.Println("\nAll keys present in every locale!")
	}
	for _, lang := range langs {
		if keys := report.Missing[lang]; len(keys) > 0 {
			fmt.Printf("\nKeys missing in %s:\n", lang)
			for _, key := range keys {
				fmt.Println("  -", key)
			}
		}
		if keys := report.Unused[lang]; len(keys) > 0 {
			fmt.Printf("\n\u26a0 Unused keys in %s (%d):\n", lang, len(keys))
			for _, key := range keys {
				fmt.Println("  -", key)
			}
		}
	}
}
