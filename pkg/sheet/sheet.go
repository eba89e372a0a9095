// Package sheet renders key shares into physical-distribution formats: a QR
// code image per token and a printable PDF share card. Only the token text
// ever appears here; the card deliberately carries no hint about the other
// shareholders.
package sheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Card describes one share to render.
type Card struct {
	SourceFile string // name of the encrypted file this share unlocks
	Index      int
	Total      int
	Threshold  int
	Token      string
	Created    time.Time
}

// QR size in mm on the A4 page.
const qrSizeMM = 70.0

// WriteQR writes the share token as a PNG QR code.
func WriteQR(token, path string) error {
	return qrcode.WriteFile(token, qrcode.Medium, 512, path)
}

// WritePDF renders a single-page share card: banner, parameters, the token in
// monospace, and a scannable QR of the same token.
func WritePDF(card Card, path string) error {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(20, 20, 20)
	p.SetAutoPageBreak(true, 20)
	p.AddPage()

	p.SetFont("Helvetica", "B", 22)
	p.CellFormat(0, 12, "cryptit key share", "", 1, "L", false, 0, "")

	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, fmt.Sprintf("Encrypted file: %s", card.SourceFile), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, fmt.Sprintf("Share %d of %d - any %d shares recover the key", card.Index, card.Total, card.Threshold), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, fmt.Sprintf("Created: %s", card.Created.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	p.Ln(4)

	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, "Share token", "", 1, "L", false, 0, "")
	p.SetFont("Courier", "", 9)
	p.MultiCell(0, 5, wrapToken(card.Token, 56), "", "L", false)
	p.Ln(6)

	png, err := qrcode.Encode(card.Token, qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("failed to render share QR: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))

	pageWidth, _ := p.GetPageSize()
	qrX := (pageWidth - qrSizeMM) / 2
	p.ImageOptions("share-qr", qrX, p.GetY(), qrSizeMM, qrSizeMM, false, opts, 0, "")

	p.SetY(p.GetY() + qrSizeMM + 8)
	p.SetFont("Helvetica", "I", 9)
	p.MultiCell(0, 5,
		"Keep this share away from the encrypted file and from the other shares. "+
			"Fewer shares than the threshold reveal nothing about the key.",
		"", "L", false)

	return p.OutputFileAndClose(path)
}

// wrapToken inserts line breaks so base64 tokens print without overflowing
// the page (base64 has no spaces for the layout engine to break on).
func wrapToken(token string, width int) string {
	var sb bytes.Buffer
	for len(token) > width {
		sb.WriteString(token[:width])
		sb.WriteByte('\n')
		token = token[width:]
	}
	sb.WriteString(token)
	return sb.String()
}
