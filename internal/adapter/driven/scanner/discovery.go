package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Regex para extrair o timestamp embutido no nome do arquivo de resultado
// (ex.: prowler-output-123456789012-20250114120000.json).
var fileTimestampRegex = regexp.MustCompile(`(\d{8}[_-]?\d{6})`)

// latestResultFile picks the most recent file among the candidates. File
// creation time is not portable, so the timestamp embedded in the filename
// wins when present; otherwise the modification time decides.
func latestResultFile(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	latest := paths[0]
	latestKey := resultFileKey(paths[0])
	for _, path := range paths[1:] {
		if key := resultFileKey(path); key > latestKey {
			latest = path
			latestKey = key
		}
	}
	return latest
}

// resultFileKey returns a sortable recency key for a result file.
func resultFileKey(path string) string {
	name := filepath.Base(path)
	if match := fileTimestampRegex.FindString(name); match != "" {
		return strings.NewReplacer("_", "", "-", "").Replace(match)
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().UTC().Format("20060102150405")
}

// numericAccountDirs lists subdirectories whose names are purely numeric.
// Multi-account scan layouts nest one result tree per account ID.
func numericAccountDirs(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && isNumeric(entry.Name()) {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	return dirs
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
