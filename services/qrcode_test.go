package services

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
)

func TestEncodeSessionQR(t *testing.T) {
	uri := "http://localhost:3000/attend/8a9f3f74-1f9f-4a4d-9c0f-0f4d1f58f3be"

	dataURI, err := EncodeSessionQR(uri)
	if err != nil {
		t.Fatalf("EncodeSessionQR() unexpected error: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURI, prefix) {
		t.Fatalf("EncodeSessionQR() = %q..., want %q prefix", dataURI[:30], prefix)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a valid PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != qrImageSize || bounds.Dy() != qrImageSize {
		t.Errorf("QR image is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), qrImageSize, qrImageSize)
	}
}

func TestEncodeSessionQRDistinctPayloads(t *testing.T) {
	a, err := EncodeSessionQR("http://localhost:3000/attend/session-a")
	if err != nil {
		t.Fatalf("EncodeSessionQR() unexpected error: %v", err)
	}
	b, err := EncodeSessionQR("http://localhost:3000/attend/session-b")
	if err != nil {
		t.Fatalf("EncodeSessionQR() unexpected error: %v", err)
	}
	if a == b {
		t.Error("different URIs produced identical QR payloads")
	}
}
