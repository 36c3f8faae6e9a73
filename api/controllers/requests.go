package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/greencycle/ewaste-backend/api/middleware"
	"github.com/greencycle/ewaste-backend/api/responses"
	"github.com/greencycle/ewaste-backend/api/validators"
	"github.com/greencycle/ewaste-backend/internal/requests"
	"github.com/greencycle/ewaste-backend/pkg/config"
	"github.com/greencycle/ewaste-backend/pkg/db/models"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/logger"
)

const imagesFormField = "images"

type statusUpdateRequest struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

type scheduleRequest struct {
	PickupDate     *string `json:"pickup_date,omitempty"`
	PickupPersonID *int64  `json:"pickup_person_id,omitempty"`
}

// assignedResolver maps the authenticated operator to their pickup person record.
type assignedResolver interface {
	FindByUserID(ctx context.Context, userID int64) (*models.PickupPerson, error)
}

func requestIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid request id")
	}
	return id, nil
}

func readUploads(form *multipart.Form) ([]requests.Upload, error) {
	if form == nil {
		return nil, nil
	}
	files := form.File[imagesFormField]
	uploads := make([]requests.Upload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded image")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded image")
		}
		uploads = append(uploads, requests.Upload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

// RequestCreate accepts a multipart pickup request submission with optional images.
func RequestCreate(svc requests.Service, gcsCfg config.GCSConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		email := middleware.EmailFromContext(r.Context())
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		maxBytes := int64(gcsCfg.UploadMaxMB) << 20
		if maxBytes <= 0 {
			maxBytes = 10 << 20
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		quantity, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer"))
			return
		}

		input := requests.CreateInput{
			RequesterEmail: email,
			Brand:          validators.SanitizeString(r.FormValue("brand"), 120),
			Model:          validators.SanitizeString(r.FormValue("model"), 120),
			Condition:      strings.TrimSpace(r.FormValue("condition")),
			Quantity:       quantity,
			PickupAddress:  validators.SanitizeString(r.FormValue("pickup_address"), 500),
			Remarks:        validators.SanitizeString(r.FormValue("remarks"), 1000),
		}
		if deviceType := validators.SanitizeString(r.FormValue("device_type"), 120); deviceType != "" {
			input.DeviceType = &deviceType
		}

		uploads, err := readUploads(r.MultipartForm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Images = uploads

		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"message": "pickup request submitted",
			"request": result,
		})
	}
}

// RequestUpdateStatus applies an admin decision to a request.
func RequestUpdateStatus(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		id, err := requestIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), id, requests.StatusUpdateInput{
			Status:          body.Status,
			RejectionReason: body.RejectionReason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RequestSchedule assigns a pickup slot and optionally a pickup person.
func RequestSchedule(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		id, err := requestIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body scheduleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Schedule(r.Context(), id, requests.ScheduleInput{
			PickupDate:     body.PickupDate,
			PickupPersonID: body.PickupPersonID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RequestsForUser lists the authenticated user's own requests.
func RequestsForUser(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		result, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RequestsAll lists every request with requester identity, for admins.
func RequestsAll(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		result, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RequestsAssigned lists requests assigned to the authenticated pickup person.
func RequestsAssigned(svc requests.Service, persons assignedResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || persons == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		person, err := persons.FindByUserID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "pickup person profile missing"))
			return
		}

		result, err := svc.ListAssigned(r.Context(), person.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
