package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/codr1/yeardots/internal/api/apiutil"
	"github.com/codr1/yeardots/internal/app"
)

func newTestHandler(t *testing.T) *handler {
	t.Helper()
	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	h, err := newHandler(cfg)
	if err != nil {
		t.Fatalf("newHandler() error = %v", err)
	}
	return h
}

func TestHandleReturnsBase64PNG(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"day": "200", "theme": "ocean"},
	})
	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
	if !resp.IsBase64Encoded {
		t.Fatalf("IsBase64Encoded = false")
	}
	if resp.Headers["Content-Type"] != "image/png" {
		t.Fatalf("Content-Type = %q", resp.Headers["Content-Type"])
	}
	if resp.Headers["Cache-Control"] == "" {
		t.Fatalf("missing Cache-Control")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Body)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
}

func TestHandleNilQueryParameters(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
}

func TestHandleErrorIsJSON(t *testing.T) {
	h := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp, err := h.handle(ctx, events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if resp.IsBase64Encoded {
		t.Fatalf("error body must not be base64 encoded")
	}
	var body apiutil.ErrorResponse
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error == "" {
		t.Fatalf("expected error message")
	}
}
