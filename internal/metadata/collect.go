package metadata

import (
	"fmt"
	"strings"
)

// Sources lists where to collect tokens from. Empty fields are skipped.
type Sources struct {
	// Words are tokens given directly (e.g. --meta values).
	Words []string

	// Files are JSON or YAML mapping files.
	Files []string

	// Images are photos whose EXIF tags are read.
	Images []string

	// Pages are saved HTML pages.
	Pages []string
}

// Collect gathers tokens from every source, in the order files, words,
// images, pages, and returns them trimmed and without duplicates.
func Collect(src Sources) ([]string, error) {
	all := make([]string, 0, len(src.Words))

	for _, path := range src.Files {
		tokens, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata file %s: %w", path, err)
		}
		all = append(all, tokens...)
	}

	all = append(all, src.Words...)

	for _, path := range src.Images {
		tokens, err := FromEXIF(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}
		all = append(all, tokens...)
	}

	for _, path := range src.Pages {
		tokens, err := FromHTML(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", path, err)
		}
		all = append(all, tokens...)
	}

	return Unique(all), nil
}

// Unique collapses whitespace in tokens and drops empties and exact
// duplicates, keeping first occurrences.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = collapseSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// collapseSpace trims s and replaces every inner whitespace run, line
// breaks included, with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
