package pdf

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderCertificateProducesPDF(t *testing.T) {
	data := CertificateData{
		UserName:       "Priya Sharma",
		CompletedCount: 12,
		IssuedAt:       time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
	}

	out, err := RenderCertificate(data)
	if err != nil {
		t.Fatalf("render certificate: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected pdf bytes")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", out[:8])
	}
}

func TestRenderCertificateRequiresName(t *testing.T) {
	if _, err := RenderCertificate(CertificateData{CompletedCount: 10}); err == nil {
		t.Fatal("expected error without user name")
	}
}
