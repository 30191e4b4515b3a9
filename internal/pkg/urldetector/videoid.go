package urldetector

import "regexp"

// Video ID shapes in priority order: short link, v= query parameter, embed path
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([\w-]{6,})`),
	regexp.MustCompile(`v=([\w-]{6,})`),
	regexp.MustCompile(`/embed/([\w-]{6,})`),
}

// ExtractVideoID derives the YouTube video ID from a link.
// The first matching pattern wins; ok is false when none match.
func ExtractVideoID(link string) (id string, ok bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(link); m != nil {
			return m[1], true
		}
	}
	return "", false
}
