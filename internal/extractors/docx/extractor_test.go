package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// createTestDOCX creates a minimal DOCX archive in memory.
func createTestDOCX(t *testing.T, documentXML, coreProps string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}
	if coreProps != "" {
		core, err := w.Create("docProps/core.xml")
		require.NoError(t, err)
		_, err = core.Write([]byte(coreProps))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Course Grading</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Midterm </w:t></w:r><w:r><w:t>30%</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Final Exam</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>40%</w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:p><w:r><w:t>Labs</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>30%</w:t></w:r></w:p></w:tc>
</w:tr>
</w:tbl>
<w:p><w:r><w:t>Due</w:t><w:tab/><w:t>May 1</w:t><w:br/><w:t>No late work</w:t></w:r></w:p>
<w:p/>
</w:body>
</w:document>`

const sampleCoreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Linear Algebra</dc:title>
</cp:coreProperties>`

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.Equal(t, []string{MIMEType}, extractor.SupportedMIMETypes())
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract(t *testing.T) {
	text, err := New().Extract(context.Background(), &domain.RawSyllabus{
		URI:      "/syllabi/math-201.docx",
		MIMEType: MIMEType,
		Content:  createTestDOCX(t, documentXML, sampleCoreXML),
	})
	require.NoError(t, err)

	assert.Equal(t, "Linear Algebra", text.Title)
	assert.Equal(t, MIMEType, text.MIMEType)
	assert.Equal(t,
		"Course Grading\nMidterm 30%\nFinal Exam 40%\nLabs 30%\nDue May 1\nNo late work",
		text.Content)
}

func TestExtract_TitleFromFileName(t *testing.T) {
	text, err := New().Extract(context.Background(), &domain.RawSyllabus{
		URI:     "/syllabi/math-201.docx",
		Content: createTestDOCX(t, documentXML, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, "math 201", text.Title)
}

func TestExtract_NoDocumentPart(t *testing.T) {
	text, err := New().Extract(context.Background(), &domain.RawSyllabus{
		URI:     "empty.docx",
		Content: createTestDOCX(t, "", sampleCoreXML),
	})
	require.NoError(t, err)
	assert.Empty(t, text.Content)
}

func TestExtract_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  *domain.RawSyllabus
	}{
		{"nil", nil},
		{"not a zip", &domain.RawSyllabus{Content: []byte("plain text")}},
		{"broken xml", &domain.RawSyllabus{Content: createTestDOCX(t, "<w:document><w:body>", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Extract(context.Background(), tt.raw)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
