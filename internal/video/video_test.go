package video_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/video"
)

func TestParseDescription_Sections(t *testing.T) {
	t.Parallel()

	description := "Ingredients:\n2 cups flour\nDirections:\n1. Mix well"
	got := video.ParseDescription(description)

	assert.Equal(t, []string{"2 cups flour"}, got.Ingredients)
	assert.Equal(t, []string{"Mix well"}, got.Directions)
}

func TestParseDescription_TimeLines(t *testing.T) {
	t.Parallel()

	description := "Prep time: 20 minutes\nCook Time: 40 minutes\nTotal time: 1 hour\nNotes:\nLet it rest."
	got := video.ParseDescription(description)

	assert.Equal(t, "20 minutes", got.PrepTime)
	assert.Equal(t, "40 minutes", got.CookTime)
	assert.Equal(t, "1 hour", got.TotalTime)
	assert.Equal(t, []string{"Let it rest."}, got.Notes)
	assert.NotContains(t, got.Notes, "Total time: 1 hour")
}

func TestParseDescription_BoilerplateDropped(t *testing.T) {
	t.Parallel()

	description := "Ingredients:\n" +
		"Follow me on Instagram!\n" +
		"https://example.com/merch\n" +
		"2 cups flour\n" +
		"1 tsp salt\n" +
		"As an affiliate I earn from qualifying purchases.\n"
	got := video.ParseDescription(description)

	assert.Equal(t, []string{"2 cups flour", "1 tsp salt"}, got.Ingredients)
}

func TestParseDescription_HeaderlessShapeSwitch(t *testing.T) {
	t.Parallel()

	description := "2 cups flour\n1 cup milk\nWhisk everything together until smooth.\nPour onto the griddle and flip once."
	got := video.ParseDescription(description)

	assert.Equal(t, []string{"2 cups flour", "1 cup milk"}, got.Ingredients)
	assert.Equal(t, []string{
		"Whisk everything together until smooth.",
		"Pour onto the griddle and flip once.",
	}, got.Directions)
}

func TestParseDescription_YieldGoesToNotes(t *testing.T) {
	t.Parallel()

	description := "Ingredients:\nServes 4 people\n2 cups flour"
	got := video.ParseDescription(description)

	assert.Equal(t, []string{"2 cups flour"}, got.Ingredients)
	assert.Equal(t, []string{"Serves 4 people"}, got.Notes)
}

func TestParseDescription_DecorativePrefixes(t *testing.T) {
	t.Parallel()

	description := "▬▬ Ingredients ▬▬\n• 2 cups flour\n►1 tsp salt"
	got := video.ParseDescription(description)

	assert.Equal(t, []string{"2 cups flour", "1 tsp salt"}, got.Ingredients)
}

func TestParseChapters_BothShapes(t *testing.T) {
	t.Parallel()

	description := "Bake – 10:00\n0:30 Mix the dough\nIntro - 0:05\n1:02:10 Final reveal"
	got := video.ParseChapters(description)

	require.Len(t, got, 4)
	assert.Equal(t, domain.Chapter{Title: "Intro", Start: 5}, got[0])
	assert.Equal(t, domain.Chapter{Title: "Mix the dough", Start: 30}, got[1])
	assert.Equal(t, domain.Chapter{Title: "Bake", Start: 600}, got[2])
	assert.Equal(t, domain.Chapter{Title: "Final reveal", Start: 3730}, got[3])
}

func TestBuildDirections_ChaptersAndTranscript(t *testing.T) {
	t.Parallel()

	chapters := []domain.Chapter{
		{Title: "Mix", Start: 0},
		{Title: "Bake", Start: 600},
	}
	segments := []domain.TranscriptSegment{
		{Text: "first we combine the flour and water", Start: 10},
		{Text: "then knead for ten minutes", Start: 120},
		{Text: "into the oven it goes", Start: 610},
	}

	got := video.BuildDirections(chapters, segments)
	require.Len(t, got, 2)
	assert.Equal(t, "First we combine the flour and water then knead for ten minutes.", got[0])
	assert.Equal(t, "Into the oven it goes.", got[1])
}

func TestBuildDirections_ChaptersOnly(t *testing.T) {
	t.Parallel()

	chapters := []domain.Chapter{
		{Title: "mix the dough", Start: 0},
		{Title: "bake until golden", Start: 600},
	}

	got := video.BuildDirections(chapters, nil)
	assert.Equal(t, []string{"Mix the dough.", "Bake until golden."}, got)
}

func TestBuildDirections_NoChapters(t *testing.T) {
	t.Parallel()

	assert.Nil(t, video.BuildDirections(nil, []domain.TranscriptSegment{{Text: "hi", Start: 0}}))
}

func TestParseCaptions_XML(t *testing.T) {
	t.Parallel()

	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.5" dur="3.2">first we combine</text>
	<text start="4.1" dur="2.0">the flour &amp;amp; water</text>
</transcript>`)

	got, err := video.ParseCaptions(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.TranscriptSegment{Text: "first we combine", Start: 0}, got[0])
	assert.Equal(t, domain.TranscriptSegment{Text: "the flour & water", Start: 4}, got[1])
}

func TestParseCaptions_JSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{"events":[
		{"tStartMs":500,"segs":[{"utf8":"first we "},{"utf8":"combine"}]},
		{"tStartMs":4100,"segs":[{"utf8":"\n"}]},
		{"tStartMs":6000,"segs":[{"utf8":"the flour and water"}]}
	]}`)

	got, err := video.ParseCaptions(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.TranscriptSegment{Text: "first we combine", Start: 0}, got[0])
	assert.Equal(t, domain.TranscriptSegment{Text: "the flour and water", Start: 6}, got[1])
}

func TestParseCaptions_Unrecognized(t *testing.T) {
	t.Parallel()

	_, err := video.ParseCaptions([]byte("not captions"))
	assert.Error(t, err)
}

func TestVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=abc123", "abc123"},
		{"https://www.youtube.com/shorts/xyz789", "xyz789"},
		{"https://example.com/watch?v=nope", ""},
		{"https://www.youtube.com/playlist?list=PL123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, video.VideoID(tt.url))
			assert.Equal(t, tt.want != "", video.IsVideoURL(tt.url))
		})
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("no route to host")
}

func TestTranscriptFetchFailureOutcome(t *testing.T) {
	t.Parallel()

	client := video.NewTranscriptClient(nil,
		video.WithHTTPClient(&http.Client{Transport: failingTransport{}}))

	segments, outcome := client.Fetch(context.Background(), "<html></html>", "abc123")

	assert.Empty(t, segments)
	assert.Equal(t, video.MethodFailed, outcome.Method)
	assert.Contains(t, outcome.Trail, "transcript_panel")
	assert.Contains(t, outcome.Trail, "player_info")
	assert.Contains(t, outcome.Trail, "fixed_fallback")
}
