package gofpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/efreitasn/despensa/internal/receipt"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(r receipt.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Purchase receipt", true)
	// Core fonts are cp1252; every UTF-8 string goes through tr.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Despensa · Purchase receipt"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("No. %s", r.Number))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", r.IssuedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, "Item")
	pdf.CellFormat(50, 7, "Price", "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range r.Prices {
		pdf.Cell(120, 6, fmt.Sprintf("Product %d", i+1))
		pdf.CellFormat(50, 6, tr(p), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(4)
	line(pdf, "Subtotal", tr(r.Subtotal))
	line(pdf, fmt.Sprintf("Discount (%d%%)", r.DiscountPercent), tr("-"+r.Discount))
	pdf.SetFont("Helvetica", "B", 12)
	line(pdf, "Total", tr(r.Total))

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, tr("Discount bands: "+r.Legend+"."), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func line(pdf *gofpdf.Fpdf, label, amount string) {
	pdf.Cell(120, 7, label)
	pdf.CellFormat(50, 7, amount, "", 0, "R", false, 0, "")
	pdf.Ln(7)
}
