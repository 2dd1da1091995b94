package invoice

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/FathimaJufla/Ecommerce/models"
)

// pdfCanvas adapts gofpdf to the Canvas interface. gofpdf's origin is the
// top-left with y growing downward, so y is flipped here.
type pdfCanvas struct {
	doc *gofpdf.Fpdf
}

func (p *pdfCanvas) AddPage() {
	p.doc.AddPage()
}

func (p *pdfCanvas) SetFont(style string, size float64) {
	p.doc.SetFont("Helvetica", style, size)
}

func (p *pdfCanvas) Text(x, y float64, s string) {
	p.doc.Text(x, PageHeight-y, s)
}

// PDF renders the order into invoice document bytes.
func PDF(order models.Order) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)

	Render(&pdfCanvas{doc: doc}, order)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}
