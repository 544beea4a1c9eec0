package video

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/jsonld"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

const (
	transcriptEndpoint = "https://www.youtube.com/youtubei/v1/get_transcript"
	playerEndpoint     = "https://www.youtube.com/youtubei/v1/player"
	fixedCaptionURL    = "https://video.google.com/timedtext?lang=en&v="

	innertubeClientName    = "WEB"
	innertubeClientVersion = "2.20240701.01.00"

	maxPanelAttempts = 3
	panelBackoff     = time.Second

	transcriptTimeout = 15 * time.Second

	transcriptUserAgent = "Mozilla/5.0 (compatible; recipe-importer)"
)

var (
	panelParamsRe  = regexp.MustCompile(`"getTranscriptEndpoint"\s*:\s*\{\s*"params"\s*:\s*"([^"]+)"`)
	captionTrackRe = regexp.MustCompile(`"captionTracks"\s*:\s*\[\s*\{[^\]]*?"baseUrl"\s*:\s*"([^"]+)"`)
	escapedAmpRe   = regexp.MustCompile(`\\u0026`)
	escapedSlashRe = regexp.MustCompile(`\\/`)
)

// TranscriptClient fetches caption segments through a fixed fallback
// chain. Failures are swallowed; callers get segments or nothing plus a
// diagnostic trail.
type TranscriptClient struct {
	client *resty.Client
	log    logger.Interface
}

// TranscriptOption configures the transcript client.
type TranscriptOption func(*TranscriptClient)

// WithHTTPClient replaces the underlying HTTP client, used by tests to
// stub the transport.
func WithHTTPClient(hc *http.Client) TranscriptOption {
	return func(c *TranscriptClient) {
		c.client = resty.NewWithClient(hc).
			SetTimeout(transcriptTimeout).
			SetHeader("User-Agent", transcriptUserAgent)
	}
}

// NewTranscriptClient builds a transcript client.
func NewTranscriptClient(log logger.Interface, opts ...TranscriptOption) *TranscriptClient {
	if log == nil {
		log = logger.NewNoOp()
	}
	c := &TranscriptClient{
		client: resty.New().
			SetTimeout(transcriptTimeout).
			SetHeader("User-Agent", transcriptUserAgent),
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// attempt is one rung of the fallback ladder.
type attempt struct {
	name string
	run  func(ctx context.Context) ([]domain.TranscriptSegment, error)
}

// MethodFailed is the outcome method when every acquisition rung came
// up empty. It keeps the metrics label set fixed.
const MethodFailed = "failed"

// TranscriptOutcome summarizes one transcript acquisition. Method is
// the fixed name of the winning attempt, or MethodFailed; Trail holds
// the per-attempt failure detail and is for logs and diagnostics only,
// never for metric labels.
type TranscriptOutcome struct {
	Method string
	Trail  string
}

// Fetch tries each acquisition method in order and returns the first
// non-empty segment list. The outcome is never a user-facing error.
func (c *TranscriptClient) Fetch(ctx context.Context, watchHTML, videoID string) ([]domain.TranscriptSegment, TranscriptOutcome) {
	attempts := []attempt{
		{"transcript_panel", func(ctx context.Context) ([]domain.TranscriptSegment, error) {
			return c.viaTranscriptPanel(ctx, watchHTML)
		}},
		{"player_info", func(ctx context.Context) ([]domain.TranscriptSegment, error) {
			return c.viaPlayerInfo(ctx, videoID)
		}},
		{"direct_caption", func(ctx context.Context) ([]domain.TranscriptSegment, error) {
			return c.viaDirectCaptionURL(ctx, watchHTML)
		}},
		{"fixed_fallback", func(ctx context.Context) ([]domain.TranscriptSegment, error) {
			return c.fetchCaptionURL(ctx, fixedCaptionURL+videoID)
		}},
	}

	var trail []string
	for _, a := range attempts {
		segments, err := a.run(ctx)
		if err != nil {
			trail = append(trail, a.name+": "+err.Error())
			c.log.Debug("transcript attempt failed", "method", a.name, "error", err)
			continue
		}
		if len(segments) == 0 {
			trail = append(trail, a.name+": empty")
			continue
		}
		c.log.Debug("transcript acquired", "method", a.name, "segments", len(segments))
		return segments, TranscriptOutcome{Method: a.name, Trail: strings.Join(trail, "; ")}
	}

	return nil, TranscriptOutcome{Method: MethodFailed, Trail: strings.Join(trail, "; ")}
}

// viaTranscriptPanel extracts the transcript-panel token from the watch
// page and POSTs it to the transcript endpoint, retrying with linearly
// increasing backoff.
func (c *TranscriptClient) viaTranscriptPanel(ctx context.Context, watchHTML string) ([]domain.TranscriptSegment, error) {
	m := panelParamsRe.FindStringSubmatch(watchHTML)
	if m == nil {
		return nil, fmt.Errorf("no transcript panel params on page")
	}

	body := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
				"hl":            "en",
			},
		},
		"params": m[1],
	}

	var lastErr error
	for i := 1; i <= maxPanelAttempts; i++ {
		resp, err := c.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(transcriptEndpoint)
		if err == nil && resp.StatusCode() == http.StatusOK {
			return segmentsFromPanelJSON(resp.Body())
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("transcript endpoint returned %d", resp.StatusCode())
		}

		if i < maxPanelAttempts {
			select {
			case <-time.After(time.Duration(i) * panelBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, lastErr
}

// viaPlayerInfo asks the player endpoint for a fresh caption-track URL
// and fetches it.
func (c *TranscriptClient) viaPlayerInfo(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	body := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
				"hl":            "en",
			},
		},
		"videoId": videoID,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(playerEndpoint)
	if err != nil {
		return nil, fmt.Errorf("player info request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("player info returned %d", resp.StatusCode())
	}

	captionURL, err := captionURLFromPlayerJSON(resp.Body())
	if err != nil {
		return nil, err
	}
	return c.fetchCaptionURL(ctx, captionURL)
}

// viaDirectCaptionURL scrapes a caption-track URL straight off the watch
// page.
func (c *TranscriptClient) viaDirectCaptionURL(ctx context.Context, watchHTML string) ([]domain.TranscriptSegment, error) {
	m := captionTrackRe.FindStringSubmatch(watchHTML)
	if m == nil {
		return nil, fmt.Errorf("no caption track on page")
	}
	return c.fetchCaptionURL(ctx, unescapeTrackURL(m[1]))
}

// fetchCaptionURL downloads a caption document and parses it, XML shape
// first, then JSON.
func (c *TranscriptClient) fetchCaptionURL(ctx context.Context, url string) ([]domain.TranscriptSegment, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("captions returned %d", resp.StatusCode())
	}
	return ParseCaptions(resp.Body())
}

// ParseCaptions decodes a caption document, trying the XML
// <text start=".."> stream and then the JSON events/segs/utf8 structure.
func ParseCaptions(data []byte) ([]domain.TranscriptSegment, error) {
	if segments, err := parseCaptionXML(data); err == nil && len(segments) > 0 {
		return segments, nil
	}
	if segments, err := parseCaptionJSON(data); err == nil && len(segments) > 0 {
		return segments, nil
	}
	return nil, fmt.Errorf("unrecognized caption format")
}

type captionXML struct {
	Texts []struct {
		Start   string `xml:"start,attr"`
		Content string `xml:",chardata"`
	} `xml:"text"`
}

func parseCaptionXML(data []byte) ([]domain.TranscriptSegment, error) {
	var doc captionXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	segments := make([]domain.TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Content))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(t.Start, 64)
		segments = append(segments, domain.TranscriptSegment{
			Text:  text,
			Start: int(start),
		})
	}
	return segments, nil
}

// parseCaptionJSON reads the {"events":[{"tStartMs":..,"segs":[{"utf8":..}]}]}
// shape.
func parseCaptionJSON(data []byte) ([]domain.TranscriptSegment, error) {
	root, err := jsonld.Parse(data)
	if err != nil {
		return nil, err
	}

	events, ok := root.Key("events").Array()
	if !ok {
		return nil, fmt.Errorf("no events array")
	}

	var segments []domain.TranscriptSegment
	for _, event := range events {
		startMs, _ := event.Key("tStartMs").Number()
		segs, hasSegs := event.Key("segs").Array()
		if !hasSegs {
			continue
		}

		var parts []string
		for _, seg := range segs {
			if text := seg.Key("utf8").Text(); text != "" {
				parts = append(parts, text)
			}
		}
		text := strings.TrimSpace(strings.Join(parts, ""))
		if text == "" || text == "\n" {
			continue
		}
		segments = append(segments, domain.TranscriptSegment{
			Text:  text,
			Start: int(startMs / 1000),
		})
	}
	return segments, nil
}

// segmentsFromPanelJSON digs transcript cues out of the deeply nested
// panel response without depending on the exact wrapper layout.
func segmentsFromPanelJSON(data []byte) ([]domain.TranscriptSegment, error) {
	root, err := jsonld.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse panel response: %w", err)
	}

	var segments []domain.TranscriptSegment
	collectPanelSegments(root, &segments)
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments in panel response")
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}

// collectPanelSegments recursively gathers transcriptSegmentRenderer and
// transcriptCueRenderer nodes.
func collectPanelSegments(value jsonld.Value, out *[]domain.TranscriptSegment) {
	if obj, ok := value.Object(); ok {
		if segment, found := panelSegment(value); found {
			*out = append(*out, segment)
			return
		}
		for key := range obj {
			collectPanelSegments(value.Key(key), out)
		}
		return
	}

	if arr, ok := value.Array(); ok {
		for _, item := range arr {
			collectPanelSegments(item, out)
		}
	}
}

// panelSegment recognizes the two renderer shapes the panel endpoint has
// used: {startMs, snippet:{runs:[{text}]}} and {startOffsetMs, cue:{simpleText}}.
func panelSegment(value jsonld.Value) (domain.TranscriptSegment, bool) {
	if startText := value.Key("startMs").Text(); startText != "" {
		if text := runsText(value.Key("snippet")); text != "" {
			ms, _ := strconv.Atoi(startText)
			return domain.TranscriptSegment{Text: text, Start: ms / 1000}, true
		}
	}

	if startText := value.Key("startOffsetMs").Text(); startText != "" {
		if text := value.Key("cue").Key("simpleText").Text(); text != "" {
			ms, _ := strconv.Atoi(startText)
			return domain.TranscriptSegment{Text: text, Start: ms / 1000}, true
		}
	}

	return domain.TranscriptSegment{}, false
}

// runsText joins a {runs:[{text}]} or {simpleText} snippet.
func runsText(snippet jsonld.Value) string {
	if text := snippet.Key("simpleText").Text(); text != "" {
		return strings.TrimSpace(text)
	}
	runs, ok := snippet.Key("runs").Array()
	if !ok {
		return ""
	}
	var parts []string
	for _, run := range runs {
		if text := run.Key("text").Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// captionURLFromPlayerJSON tries the two player response formats.
func captionURLFromPlayerJSON(data []byte) (string, error) {
	root, err := jsonld.Parse(data)
	if err != nil {
		return "", fmt.Errorf("parse player response: %w", err)
	}

	tracks := root.Key("captions").
		Key("playerCaptionsTracklistRenderer").
		Key("captionTracks")
	if url := firstTrackURL(tracks); url != "" {
		return url, nil
	}

	// Older responses put the list at the top level.
	if url := firstTrackURL(root.Key("captionTracks")); url != "" {
		return url, nil
	}

	return "", fmt.Errorf("no caption tracks in player response")
}

func firstTrackURL(tracks jsonld.Value) string {
	arr, ok := tracks.Array()
	if !ok || len(arr) == 0 {
		return ""
	}
	return unescapeTrackURL(arr[0].Key("baseUrl").Text())
}

// unescapeTrackURL undoes the JSON string escaping watch pages apply to
// embedded URLs.
func unescapeTrackURL(url string) string {
	url = escapedAmpRe.ReplaceAllString(url, "&")
	return escapedSlashRe.ReplaceAllString(url, "/")
}
