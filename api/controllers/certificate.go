package controllers

import (
	"net/http"
	"strconv"

	"github.com/greencycle/ewaste-backend/api/middleware"
	"github.com/greencycle/ewaste-backend/api/responses"
	"github.com/greencycle/ewaste-backend/internal/certificates"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/logger"
)

// CertificateDownload streams the caller's appreciation certificate as a PDF.
func CertificateDownload(svc certificates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "certificate service unavailable"))
			return
		}

		email := middleware.EmailFromContext(r.Context())
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		pdfBytes, err := svc.Generate(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="greencycle-certificate.pdf"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfBytes); err != nil && logg != nil {
			logg.Error(r.Context(), "write certificate response", err)
		}
	}
}
