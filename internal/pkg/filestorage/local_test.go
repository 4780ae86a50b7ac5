package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadedFileHeader(t *testing.T, filename, contents string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["photo"][0]
}

func TestSaveAndDeleteUnderSubdirectory(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	url, err := store.SaveFileWithPath(uploadedFileHeader(t, "lamp.jpg", "jpeg bytes"), "products")
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/products/") {
		t.Fatalf("URL = %q, want /uploads/products/ prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("URL = %q, original extension not kept", url)
	}

	physical := filepath.Join(base, strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(physical); err != nil {
		t.Fatalf("saved file not on disk at %s: %v", physical, err)
	}

	if err := store.DeleteFile(url); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(physical); !os.IsNotExist(err) {
		t.Errorf("file still on disk after delete")
	}

	// Deleting again is a no-op, not an error.
	if err := store.DeleteFile(url); err != nil {
		t.Errorf("second DeleteFile: %v", err)
	}
}

func TestDeleteFileRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	if err := store.DeleteFile("/uploads/../etc/passwd"); err == nil {
		t.Error("expected error for traversal path")
	}
	if err := store.DeleteFile(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
