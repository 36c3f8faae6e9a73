// Package pdf renders the appreciation certificate issued to recyclers.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// CertificateData carries everything printed on the certificate.
type CertificateData struct {
	UserName       string
	CompletedCount int64
	IssuedAt       time.Time
}

// RenderCertificate produces a single-page landscape A4 certificate.
func RenderCertificate(data CertificateData) ([]byte, error) {
	if data.UserName == "" {
		return nil, errors.New("user name is required")
	}
	if data.IssuedAt.IsZero() {
		data.IssuedAt = time.Now().UTC()
	}

	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetTitle("Certificate of Appreciation", false)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()

	// Border
	doc.SetDrawColor(34, 102, 68)
	doc.SetLineWidth(1.2)
	doc.Rect(10, 10, pageW-20, pageH-20, "D")
	doc.SetLineWidth(0.3)
	doc.Rect(13, 13, pageW-26, pageH-26, "D")

	doc.SetFont("Helvetica", "B", 30)
	doc.SetTextColor(34, 102, 68)
	doc.SetY(40)
	doc.CellFormat(0, 14, "Certificate of Appreciation", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(60, 60, 60)
	doc.Ln(8)
	doc.CellFormat(0, 8, "This certificate is proudly presented to", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)
	doc.CellFormat(0, 12, data.UserName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(60, 60, 60)
	doc.Ln(4)
	doc.CellFormat(0, 8, fmt.Sprintf(
		"in recognition of responsibly recycling e-waste through %d completed pickups.",
		data.CompletedCount,
	), "", 1, "C", false, 0, "")

	doc.Ln(12)
	doc.SetFont("Helvetica", "I", 12)
	doc.CellFormat(0, 8, "Issued on "+data.IssuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "B", 13)
	doc.SetTextColor(34, 102, 68)
	doc.CellFormat(0, 8, "GreenCycle", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering certificate: %w", err)
	}
	return buf.Bytes(), nil
}
