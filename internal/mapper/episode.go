package mapper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonEpisodePattern = regexp.MustCompile(`(?i)s([0-9]{1,2})e([0-9]{1,3})`)
	episodeWordPattern   = regexp.MustCompile(`(?i)(?:episode|folge|ep\.?)\s*([0-9]{1,4})`)
)

// ExtractEpisodeNumber finds an episode number in a title. The S##E##
// pattern's episode group takes precedence over a spelled-out
// "episode"/"folge"/"ep." marker. The second return is false when no number
// is present.
func ExtractEpisodeNumber(title string) (int, bool) {
	if strings.TrimSpace(title) == "" {
		return 0, false
	}

	if match := seasonEpisodePattern.FindStringSubmatch(title); match != nil {
		if number, err := strconv.Atoi(match[2]); err == nil {
			return number, true
		}
	}

	if match := episodeWordPattern.FindStringSubmatch(title); match != nil {
		if number, err := strconv.Atoi(match[1]); err == nil {
			return number, true
		}
	}

	return 0, false
}
