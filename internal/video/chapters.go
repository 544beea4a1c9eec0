package video

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
)

var (
	// "MM:SS Title" and "H:MM:SS Title".
	leadingStampRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s+(.+)$`)
	// "Title – MM:SS", with hyphen, en dash, or em dash.
	trailingStampRe = regexp.MustCompile(`^(.+?)\s*[-–—]\s*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*$`)
)

// ParseChapters extracts chapter markers from description text. Both
// timestamp shapes are recognized; the result is sorted by start offset.
func ParseChapters(text string) []domain.Chapter {
	var chapters []domain.Chapter

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(decorPrefixRe.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}
		if chapter, ok := parseChapterLine(line); ok {
			chapters = append(chapters, chapter)
		}
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start < chapters[j].Start
	})
	return chapters
}

func isTimestampLine(line string) bool {
	_, ok := parseChapterLine(line)
	return ok
}

func parseChapterLine(line string) (domain.Chapter, bool) {
	if m := leadingStampRe.FindStringSubmatch(line); m != nil {
		return domain.Chapter{
			Title: strings.TrimSpace(m[4]),
			Start: clockToSeconds(m[1], m[2], m[3]),
		}, true
	}
	if m := trailingStampRe.FindStringSubmatch(line); m != nil {
		return domain.Chapter{
			Title: strings.TrimSpace(m[1]),
			Start: clockToSeconds(m[2], m[3], m[4]),
		}, true
	}
	return domain.Chapter{}, false
}

// clockToSeconds converts "H:MM:SS" or "MM:SS" captures; the third
// capture is empty for the two-part form.
func clockToSeconds(first, second, third string) int {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	if third == "" {
		return a*60 + b
	}
	c, _ := strconv.Atoi(third)
	return a*3600 + b*60 + c
}
