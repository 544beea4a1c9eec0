package video

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonesrussell/gorecipe/internal/domain"
)

// BuildDirections assembles direction steps from chapters and transcript
// segments. With both present, each chapter's text is the concatenation
// of every segment starting in [chapter.Start, next.Start), sentence-cased
// and terminally punctuated. With chapters alone, the titles become the
// steps. With neither, the caller falls back to the description parse.
func BuildDirections(chapters []domain.Chapter, segments []domain.TranscriptSegment) []string {
	if len(chapters) == 0 {
		return nil
	}

	if len(segments) == 0 {
		titles := make([]string, 0, len(chapters))
		for _, chapter := range chapters {
			titles = append(titles, sentenceCase(chapter.Title))
		}
		return titles
	}

	directions := make([]string, 0, len(chapters))
	for i, chapter := range chapters {
		end := math.MaxInt
		if i+1 < len(chapters) {
			end = chapters[i+1].Start
		}

		var parts []string
		for _, segment := range segments {
			if segment.Start >= chapter.Start && segment.Start < end {
				parts = append(parts, segment.Text)
			}
		}

		text := strings.Join(parts, " ")
		if text == "" {
			text = chapter.Title
		}
		directions = append(directions, sentenceCase(text))
	}

	return directions
}

// sentenceCase uppercases the first letter and guarantees terminal
// punctuation.
func sentenceCase(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)

	if !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}
	return text
}
