package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/dQw4w9WgXcQ":                        "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=x&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?start=10":  "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ#t=1":           "dQw4w9WgXcQ",
	}
	for url, want := range cases {
		got, ok := ExtractVideoID(url)
		assert.True(t, ok, url)
		assert.Equal(t, want, got, url)
	}

	for _, url := range []string{
		"https://example.com/no-id",
		"https://youtu.be/short",
		"",
	} {
		_, ok := ExtractVideoID(url)
		assert.False(t, ok, url)
	}
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", ThumbnailURL("dQw4w9WgXcQ"))
}
