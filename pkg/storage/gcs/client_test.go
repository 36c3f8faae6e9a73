package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	return &Client{
		defaultBucket: "bucket",
		tokens: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
		httpClient: &http.Client{Transport: rt},
	}
}

func TestUploadSuccess(t *testing.T) {
	t.Parallel()

	var gotBody string
	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		if req.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("unexpected content type %s", req.Header.Get("Content-Type"))
		}
		if got := req.URL.Query().Get("name"); got != "requests/photo.png" {
			t.Fatalf("unexpected object name %s", got)
		}
		body, _ := io.ReadAll(req.Body)
		gotBody = string(body)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"name":"requests/photo.png"}`)),
			Header:     http.Header{},
		}
	})

	url, err := client.BucketHandle("").Upload(context.Background(), "requests/photo.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://storage.googleapis.com/bucket/requests/photo.png" {
		t.Fatalf("unexpected public url %s", url)
	}
	if gotBody != "png-bytes" {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestUploadFailureStatus(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		return &http.Response{
			Status:     "403 Forbidden",
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader(`{"error":"denied"}`)),
			Header:     http.Header{},
		}
	})

	_, err := client.BucketHandle("").Upload(context.Background(), "requests/photo.png", "image/png", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestUploadRequiresObjectName(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		t.Fatal("no request expected")
		return nil
	})

	if _, err := client.BucketHandle("").Upload(context.Background(), "", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty object name")
	}
}

func TestDeleteNotFoundIsNoError(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		if req.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", req.Method)
		}
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}
	})

	if err := client.BucketHandle("").Delete(context.Background(), "requests/gone.png"); err != nil {
		t.Fatalf("delete of missing object should succeed: %v", err)
	}
}

func TestTokenSourceCachesUntilExpiry(t *testing.T) {
	t.Parallel()

	calls := 0
	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		calls++
		return "token", time.Now().Add(time.Hour), nil
	}}

	for i := 0; i < 3; i++ {
		if _, err := ts.Token(context.Background()); err != nil {
			t.Fatalf("token: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single fetch, got %d", calls)
	}
}

func TestTokenSourceRefreshesExpired(t *testing.T) {
	t.Parallel()

	calls := 0
	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		calls++
		if calls == 1 {
			return "stale", time.Now().Add(-time.Minute), nil
		}
		return "fresh", time.Now().Add(time.Hour), nil
	}}

	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("token: %v", err)
	}
	token, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "fresh" {
		t.Fatalf("expected refreshed token, got %q", token)
	}
	if calls != 2 {
		t.Fatalf("expected refetch, got %d calls", calls)
	}
}

func TestTokenSourcePropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("token endpoint down")
	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		return "", time.Time{}, wantErr
	}}

	if _, err := ts.Token(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
