package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// MIMEType is the content type of Word documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxPartSize caps how much of a single archive entry is read.
const maxPartSize = 32 << 20

// Extractor handles DOCX syllabi.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract reads word/document.xml from the archive. Paragraphs become
// lines and table cells of one row share a line.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx archive: %v", domain.ErrInvalidInput, err)
	}

	var content string
	if part, err := readPart(reader, "word/document.xml"); err != nil {
		return nil, err
	} else if part != nil {
		if content, err = parseDocumentXML(part); err != nil {
			return nil, err
		}
	}

	return &domain.SyllabusText{
		URI:      raw.URI,
		Title:    extractTitle(reader, raw),
		MIMEType: raw.MIMEType,
		Content:  content,
	}, nil
}

// readPart returns the bytes of a named archive entry, or nil if absent.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidInput, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(io.LimitReader(rc, maxPartSize))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidInput, name, err)
		}
		return content, nil
	}
	return nil, nil
}

var multiSpaces = regexp.MustCompile(`[ \t]+`)

// parseDocumentXML walks the WordprocessingML token stream.
func parseDocumentXML(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		out       strings.Builder
		inText    bool
		cellDepth int
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: document.xml: %v", domain.ErrInvalidInput, err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteString(" ")
			case "br", "cr":
				out.WriteString("\n")
			case "tc":
				cellDepth++
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if cellDepth > 0 {
					out.WriteString(" ")
				} else {
					out.WriteString("\n")
				}
			case "tc":
				cellDepth--
				out.WriteString(" ")
			case "tr":
				out.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				out.Write(el)
			}
		}
	}

	lines := strings.Split(out.String(), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multiSpaces.ReplaceAllString(line, " "))
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n"), nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle uses a metadata title, then docProps/core.xml,
// then the file name.
func extractTitle(reader *zip.Reader, raw *domain.RawSyllabus) string {
	if title, ok := raw.Metadata["title"].(string); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	if part, err := readPart(reader, "docProps/core.xml"); err == nil && part != nil {
		var core coreXML
		if err := xml.Unmarshal(part, &core); err == nil && strings.TrimSpace(core.Title) != "" {
			return strings.TrimSpace(core.Title)
		}
	}

	return plaintext.TitleFromURI(raw.URI)
}
