package gofpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/efreitasn/despensa/internal/receipt"
)

func TestGenerate(t *testing.T) {
	out, err := New().Generate(receipt.Receipt{
		Number:          "3f1c",
		IssuedAt:        time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Prices:          [5]string{"L 200.00", "L 200.00", "L 200.00", "L 200.00", "L 200.00"},
		Subtotal:        "L 1,000.00",
		DiscountPercent: 10,
		Discount:        "L 100.00",
		Total:           "L 900.00",
		Legend:          "0–999.99 (0%), 1,000–4,999.99 (10%), 5,000–8,999.99 (20%), 9,000–12,999.99 (30%), 13,000+ (40%)",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 8)])
	}
}

var _ receipt.Generator = (*Generator)(nil)
