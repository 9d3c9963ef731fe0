// Package taxonomy provides the category list offered by the expense form.
// Categories are free-form in the ledger itself; this list only seeds the UI.
package taxonomy

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Defaults is the built-in category set, used when no seed file exists.
var Defaults = []string{"Food", "Rent", "Travel", "Bills", "Entertainment", "Other"}

// LoadFromDir reads categories from seed_categories.txt under base,
// falling back to Defaults when the file is missing or empty.
func LoadFromDir(base string) []string {
	cats := readLines(filepath.Join(base, "seed_categories.txt"))
	if len(cats) == 0 {
		return append([]string(nil), Defaults...)
	}
	return cats
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// Input order is preserved; the form shows categories as seeded
	return out
}
