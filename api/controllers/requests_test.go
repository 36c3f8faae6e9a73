package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greencycle/ewaste-backend/api/middleware"
	"github.com/greencycle/ewaste-backend/internal/requests"
	"github.com/greencycle/ewaste-backend/pkg/config"
	"github.com/greencycle/ewaste-backend/pkg/enums"
)

type stubRequestsService struct {
	created *requests.CreateInput
	err     error
}

func (s *stubRequestsService) Create(_ context.Context, input requests.CreateInput) (*requests.RequestDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &input
	return &requests.RequestDTO{ID: 1, Status: enums.RequestStatusPending}, nil
}

func (s *stubRequestsService) UpdateStatus(context.Context, int64, requests.StatusUpdateInput) (*requests.RequestDTO, error) {
	return nil, nil
}

func (s *stubRequestsService) Schedule(context.Context, int64, requests.ScheduleInput) (*requests.RequestDTO, error) {
	return nil, nil
}

func (s *stubRequestsService) ListForUser(context.Context, int64) ([]requests.RequestDTO, error) {
	return nil, nil
}

func (s *stubRequestsService) ListAll(context.Context) ([]requests.AdminRequestDTO, error) {
	return nil, nil
}

func (s *stubRequestsService) ListAssigned(context.Context, int64) ([]requests.AdminRequestDTO, error) {
	return nil, nil
}

func buildMultipart(t *testing.T, fields map[string]string, images []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for i, content := range images {
		part, err := writer.CreateFormFile(imagesFormField, "photo"+string(rune('a'+i))+".jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestRequestCreateParsesMultipart(t *testing.T) {
	svc := &stubRequestsService{}
	handler := RequestCreate(svc, config.GCSConfig{UploadMaxMB: 10}, nil)

	body, contentType := buildMultipart(t, map[string]string{
		"device_type":    "Laptop",
		"brand":          "Dell",
		"model":          "XPS 13",
		"condition":      "WORKING",
		"quantity":       "2",
		"pickup_address": "12 Green Street",
		"remarks":        "battery swollen",
	}, []string{"img-one", "img-two"})

	req := httptest.NewRequest(http.MethodPost, "/api/requests", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithIdentity(req.Context(), 7, "user@example.com", "USER"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil {
		t.Fatal("expected service to receive input")
	}
	if svc.created.RequesterEmail != "user@example.com" {
		t.Fatalf("unexpected requester email %q", svc.created.RequesterEmail)
	}
	if svc.created.DeviceType == nil || *svc.created.DeviceType != "Laptop" {
		t.Fatalf("unexpected device type %v", svc.created.DeviceType)
	}
	if svc.created.Quantity != 2 {
		t.Fatalf("unexpected quantity %d", svc.created.Quantity)
	}
	if len(svc.created.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(svc.created.Images))
	}
	if got := string(svc.created.Images[0].Data); got != "img-one" {
		t.Fatalf("image order not preserved, first was %q", got)
	}

	var envelope struct {
		Data struct {
			Message string               `json:"message"`
			Request *requests.RequestDTO `json:"request"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message == "" {
		t.Fatal("expected confirmation message")
	}
	if envelope.Data.Request == nil || envelope.Data.Request.ID != 1 {
		t.Fatalf("unexpected request payload %+v", envelope.Data.Request)
	}
}

func TestRequestCreateOmitsEmptyDeviceType(t *testing.T) {
	svc := &stubRequestsService{}
	handler := RequestCreate(svc, config.GCSConfig{UploadMaxMB: 10}, nil)

	body, contentType := buildMultipart(t, map[string]string{
		"condition": "DEAD",
		"quantity":  "1",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/requests", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithIdentity(req.Context(), 7, "user@example.com", "USER"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created.DeviceType != nil {
		t.Fatalf("expected nil device type, got %v", *svc.created.DeviceType)
	}
}

func TestRequestCreateRejectsBadQuantity(t *testing.T) {
	svc := &stubRequestsService{}
	handler := RequestCreate(svc, config.GCSConfig{UploadMaxMB: 10}, nil)

	body, contentType := buildMultipart(t, map[string]string{
		"condition": "WORKING",
		"quantity":  "two",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/requests", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithIdentity(req.Context(), 7, "user@example.com", "USER"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.created != nil {
		t.Fatal("service should not be called on invalid quantity")
	}
}

func TestRequestCreateRequiresIdentity(t *testing.T) {
	svc := &stubRequestsService{}
	handler := RequestCreate(svc, config.GCSConfig{UploadMaxMB: 10}, nil)

	body, contentType := buildMultipart(t, map[string]string{"condition": "WORKING", "quantity": "1"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/requests", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequestUpdateStatusRejectsBadID(t *testing.T) {
	svc := &stubRequestsService{}
	handler := RequestUpdateStatus(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/requests/abc/status", strings.NewReader(`{"status":"APPROVED"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
