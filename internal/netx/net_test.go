package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUploadToPresignedURL(t *testing.T) {
	var gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := UploadToPresignedURL(context.Background(), srv.URL, []byte("payload"))
	if err != nil {
		t.Fatalf("UploadToPresignedURL error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("expected PUT, got %s", gotMethod)
	}
	if gotBody != "payload" {
		t.Errorf("unexpected body: %q", gotBody)
	}
}

func TestUploadToPresignedURL_RejectedSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SignatureDoesNotMatch", http.StatusForbidden)
	}))
	defer srv.Close()

	if err := UploadToPresignedURL(context.Background(), srv.URL, []byte("payload")); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestUploadToPresignedURL_BadURL(t *testing.T) {
	if err := UploadToPresignedURL(context.Background(), "http://127.0.0.1:0", []byte("x")); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
