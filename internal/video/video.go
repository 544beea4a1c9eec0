package video

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/ingredient"
	"github.com/jonesrussell/gorecipe/internal/jsonld"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

var (
	descriptionRe = regexp.MustCompile(`"shortDescription"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	videoTitleRe  = regexp.MustCompile(`"videoDetails"\s*:\s*\{[^{]*?"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// videoHosts are watch-page hosts handled by this pipeline.
var videoHosts = []string{
	"youtube.com", "m.youtube.com", "youtu.be",
}

// IsVideoURL reports whether the URL is a recognized video watch URL.
func IsVideoURL(rawURL string) bool {
	return VideoID(rawURL) != ""
}

// VideoID extracts the video identifier from a watch URL, or "".
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	supported := false
	for _, h := range videoHosts {
		if host == h {
			supported = true
			break
		}
	}
	if !supported {
		return ""
	}

	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	if strings.HasPrefix(u.Path, "/shorts/") {
		return strings.TrimPrefix(u.Path, "/shorts/")
	}
	if u.Path == "/watch" {
		return u.Query().Get("v")
	}
	return ""
}

// Pipeline imports a recipe from a video watch page.
type Pipeline struct {
	transcripts *TranscriptClient
	log         logger.Interface
}

// NewPipeline builds a video pipeline.
func NewPipeline(transcripts *TranscriptClient, log logger.Interface) *Pipeline {
	if log == nil {
		log = logger.NewNoOp()
	}
	if transcripts == nil {
		transcripts = NewTranscriptClient(log)
	}
	return &Pipeline{transcripts: transcripts, log: log}
}

// Import parses the watch page HTML into an import result. Transcript
// sub-failures are swallowed into the returned outcome; the result is
// nil only when both ingredients and directions came up empty.
func (p *Pipeline) Import(ctx context.Context, watchHTML, sourceURL string) (*domain.ImportResult, TranscriptOutcome) {
	description := extractDescription(watchHTML)
	parsed := ParseDescription(description)
	chapters := ParseChapters(description)

	var (
		segments []domain.TranscriptSegment
		outcome  TranscriptOutcome
	)
	if len(chapters) > 0 {
		segments, outcome = p.transcripts.Fetch(ctx, watchHTML, VideoID(sourceURL))
	}

	directions := BuildDirections(chapters, segments)
	if len(directions) == 0 {
		directions = parsed.Directions
	}

	rawIngredients := parsed.Ingredients
	result := &domain.ImportResult{
		SourceURL:      sourceURL,
		Strategy:       domain.StrategyVideo,
		Name:           extractVideoTitle(watchHTML),
		Time:           videoTime(parsed),
		Notes:          strings.Join(parsed.Notes, "\n"),
		RawIngredients: domain.RawLines(rawIngredients),
		Ingredients:    ingredient.ParseAll(rawIngredients),
		RawDirections:  directions,
		Directions:     directions,
	}

	if !result.HasUsableContent() {
		p.log.Warn("video import yielded nothing",
			"url", sourceURL, "transcript", outcome.Trail)
		return nil, outcome
	}
	return result, outcome
}

// videoTime prefers the explicit total, then prep plus cook.
func videoTime(parsed DescriptionResult) string {
	if parsed.TotalTime != "" {
		return parsed.TotalTime
	}

	prep, _ := jsonld.ParseDuration(parsed.PrepTime)
	cook, _ := jsonld.ParseDuration(parsed.CookTime)
	if prep+cook > 0 {
		return jsonld.FormatDuration(prep + cook)
	}
	return ""
}

// extractDescription pulls the JSON-escaped description blob off the
// watch page.
func extractDescription(watchHTML string) string {
	return unescapeJSONString(descriptionRe, watchHTML)
}

// extractVideoTitle reads the videoDetails title.
func extractVideoTitle(watchHTML string) string {
	return unescapeJSONString(videoTitleRe, watchHTML)
}

func unescapeJSONString(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	unquoted, err := strconv.Unquote(`"` + m[1] + `"`)
	if err != nil {
		// The escaped form is still readable enough to parse.
		return strings.ReplaceAll(m[1], `\n`, "\n")
	}
	return unquoted
}
