package service

import (
	"errors"
	"testing"
)

func TestValidateImage(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		if err := ValidateImage(ct, 1024); err != nil {
			t.Errorf("ValidateImage(%q) rejected: %v", ct, err)
		}
	}
	if err := ValidateImage("image/bmp", 1024); err == nil {
		t.Fatal("accepted unsupported type")
	}
	if err := ValidateImage("application/pdf", 1024); err == nil {
		t.Fatal("accepted non-image type")
	}
	if err := ValidateImage("image/png", MaxImageBytes); err != nil {
		t.Fatalf("rejected file at the exact limit: %v", err)
	}
	if err := ValidateImage("image/png", MaxImageBytes+1); err == nil {
		t.Fatal("accepted over-sized file")
	}
}

func TestValidateImageErrorType(t *testing.T) {
	err := ValidateImage("image/bmp", 1)
	var verr *ImageValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T", err)
	}
}

func TestSignatureSortedAndStable(t *testing.T) {
	u := &ImageUploader{APISecret: "shh"}
	a := u.signature(map[string]string{"b": "2", "a": "1"})
	b := u.signature(map[string]string{"a": "1", "b": "2"})
	if a != b {
		t.Fatal("signature depends on map iteration order")
	}
	if len(a) != 40 {
		t.Fatalf("signature length = %d, want hex sha1", len(a))
	}
	if a == u.signature(map[string]string{"a": "1", "b": "3"}) {
		t.Fatal("different params produced the same signature")
	}
}
