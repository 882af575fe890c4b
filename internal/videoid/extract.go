package videoid

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	videoIDPattern   = regexp.MustCompile(`\[([a-zA-Z0-9\-_]{11})\]`)
	channelIDPattern = regexp.MustCompile(`\[([a-zA-Z0-9\-_]{24})\]`)
	bracketedIDs     = regexp.MustCompile(`\[[a-zA-Z0-9\-_]{11,24}\]`)
	wordSeparators   = regexp.MustCompile(`[_.]+`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// Extract returns the identifier embedded in a filename or path, preferring
// the 11-character video form over the 24-character channel form. An empty
// string signals that no identifier is present, not an error.
func Extract(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	if match := videoIDPattern.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	if match := channelIDPattern.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	return ""
}

// ExtractChannelID returns the 24-character channel identifier embedded in a
// folder or file name, ignoring any video identifier. Empty means absent.
func ExtractChannelID(name string) string {
	if match := channelIDPattern.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	return ""
}

// CleanSearchText strips bracketed identifiers and collapses filename
// separators into a normalized search phrase. The operation is idempotent.
func CleanSearchText(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	withoutID := bracketedIDs.ReplaceAllString(value, "")
	withoutSeparators := wordSeparators.ReplaceAllString(withoutID, " ")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(withoutSeparators, " "))
}

// BuildSearchQuery prefers a cleaned display title, falling back to the
// cleaned filename stem of the given path.
func BuildSearchQuery(title, path string) string {
	if strings.TrimSpace(title) != "" {
		return CleanSearchText(title)
	}
	if strings.TrimSpace(path) == "" {
		return ""
	}
	base := filepath.Base(path)
	return CleanSearchText(strings.TrimSuffix(base, filepath.Ext(base)))
}

// SafeCacheKey converts arbitrary text into a filesystem-safe cache folder
// name. Empty or fully stripped input maps to "unknown".
func SafeCacheKey(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	var builder strings.Builder
	builder.Grow(len(value))
	for _, r := range value {
		if invalidFilenameRune(r) {
			builder.WriteByte('_')
		} else {
			builder.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(CleanSearchText(builder.String()), " ", "_")
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}

func invalidFilenameRune(r rune) bool {
	switch r {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
		return true
	}
	return r < 0x20
}

// DeriveTitle produces a human-readable title from a filename stem, used as
// fallback text for episodes and series when the backend record lacks one.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown Video"
	}
	base := filepath.Base(sourcePath)
	base = bracketedIDs.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "")
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Video"
	}
	return cases.Title(language.Und).String(title)
}
