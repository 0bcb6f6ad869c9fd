package extract

import (
	"bytes"
	"io"

	crerr "github.com/cockroachdb/errors"
	"github.com/ledongthuc/pdf"
)

// PDFTextStrategy decodes a PDF byte stream and feeds the extracted text
// through the shared line grammar. A corrupt stream is the one hard failure in
// this layer and surfaces as ErrMalformedInput; it is never folded into an
// empty result.
type PDFTextStrategy struct {
	grammar *TextGrammarStrategy
}

func NewPDFTextStrategy(grammar GrammarConfig) *PDFTextStrategy {
	return &PDFTextStrategy{grammar: NewTextGrammarStrategy(grammar)}
}

func (s *PDFTextStrategy) Layout() Layout { return LayoutPDFText }

func (s *PDFTextStrategy) Extract(doc Document) ([]RawMatchup, error) {
	text := doc.Text
	if text == "" {
		decoded, err := DecodePDFText(doc.Body)
		if err != nil {
			return nil, err
		}
		text = decoded
	}
	return s.grammar.scan(text), nil
}

// DecodePDFText extracts plain text from a PDF byte stream. The pdf package
// panics on some malformed files, so decode failures of either shape are
// normalized to ErrMalformedInput.
func DecodePDFText(body []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = markMalformed(crerr.Newf("pdf reader panic: %v", r), "pdf")
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", markMalformed(err, "pdf")
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", markMalformed(err, "pdf")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", markMalformed(err, "pdf")
	}
	return buf.String(), nil
}
