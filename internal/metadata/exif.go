package metadata

import (
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// exifTokenTags are the EXIF tags whose values identify a person or device
// owner. Values are used as-is.
var exifTokenTags = map[string]bool{
	"Artist":          true,
	"Author":          true,
	"XPAuthor":        true,
	"Copyright":       true,
	"Make":            true,
	"Model":           true,
	"HostComputer":    true,
	"OwnerName":       true,
	"CameraOwnerName": true,
}

// exifDateTags hold "YYYY:MM:DD HH:MM:SS" timestamps; only the year is kept.
var exifDateTags = map[string]bool{
	"DateTimeOriginal":  true,
	"DateTimeDigitized": true,
	"DateTime":          true,
}

// FromEXIF extracts tokens from the EXIF metadata of a local image.
// Images without EXIF data yield no tokens and no error.
func FromEXIF(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return nil, err
	}
	return FromEXIFData(data), nil
}

// FromEXIFData extracts tokens from raw image bytes.
func FromEXIFData(data []byte) []string {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	tokens := make([]string, 0)
	for _, entry := range entries {
		value := strings.Trim(strings.TrimSpace(entry.Formatted), "[]\"")
		if value == "" {
			continue
		}
		switch {
		case exifTokenTags[entry.TagName]:
			tokens = append(tokens, splitCopyright(value)...)
		case exifDateTags[entry.TagName]:
			if year, ok := exifYear(value); ok {
				tokens = append(tokens, year)
			}
		}
	}
	return tokens
}

// splitCopyright strips a leading "(c)" or "©" marker from copyright-style values.
func splitCopyright(value string) []string {
	for _, marker := range []string{"©", "(c)", "(C)", "Copyright"} {
		value = strings.TrimSpace(strings.TrimPrefix(value, marker))
	}
	if value == "" {
		return nil
	}
	return []string{value}
}

// exifYear returns the year part of an EXIF timestamp.
func exifYear(value string) (string, bool) {
	if len(value) < 4 {
		return "", false
	}
	year := value[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if year == "0000" {
		return "", false
	}
	return year, true
}
