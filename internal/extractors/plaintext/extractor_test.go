package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.Contains(t, extractor.SupportedMIMETypes(), "text/plain")
	assert.Equal(t, 5, extractor.Priority())
}

func TestExtract_Success(t *testing.T) {
	raw := &domain.RawSyllabus{
		URI:      "/path/to/intro_to-biology.txt",
		MIMEType: "text/plain",
		Content:  []byte("\ufeffMidterm 30%\r\nFinal 40%\rQuizzes 30%"),
	}

	text, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, raw.URI, text.URI)
	assert.Equal(t, "intro to biology", text.Title)
	assert.Equal(t, "text/plain", text.MIMEType)
	assert.Equal(t, "Midterm 30%\nFinal 40%\nQuizzes 30%", text.Content)
}

func TestExtract_NilInput(t *testing.T) {
	text, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, text)
}

func TestClean_InvalidUTF8(t *testing.T) {
	assert.Equal(t, "Essay 20%", Clean([]byte("Essay\xff 20%")))
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawSyllabus
		want string
	}{
		{"metadata title wins", domain.RawSyllabus{URI: "a.txt", Metadata: map[string]any{"title": " Chemistry "}}, "Chemistry"},
		{"blank metadata title ignored", domain.RawSyllabus{URI: "physics-101.txt", Metadata: map[string]any{"title": " "}}, "physics 101"},
		{"non-string metadata ignored", domain.RawSyllabus{URI: "art.txt", Metadata: map[string]any{"title": 7}}, "art"},
		{"stdin has no title", domain.RawSyllabus{URI: "stdin"}, ""},
		{"empty uri", domain.RawSyllabus{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFor(&tt.raw))
		})
	}
}
