// Package locales содержит файлы переводов сообщений API.
package locales

import "embed"

// FS файлы переводов, имя файла задает язык: en.json, ru.json
//
//go:embed *.json
var FS embed.FS
