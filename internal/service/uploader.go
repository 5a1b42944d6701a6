package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Image upload constraints, checked before anything leaves the server.
const MaxImageBytes = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const (
	profileImageFolder    = "ese-task-manager/profiles"
	profileTransformation = "c_fill,g_face,h_300,w_300"
)

// ImageValidationError marks a rejected file (bad type or size). The
// handler maps it to 400; any other upload error is retryable.
type ImageValidationError struct{ Reason string }

func (e *ImageValidationError) Error() string { return e.Reason }

// ErrUploadFailed covers delivery problems talking to the image host.
var ErrUploadFailed = errors.New("image upload failed")

// ImageUploader sends profile images to the Cloudinary upload API with
// a face-crop transformation. The public id is derived from the user
// id, so re-uploading replaces the previous image instead of piling up
// orphans.
type ImageUploader struct {
	CloudName string
	APIKey    string
	APISecret string
	Client    *http.Client
}

func NewImageUploader(cloudName, apiKey, apiSecret string) *ImageUploader {
	return &ImageUploader{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateImage runs the pre-upload checks on declared content type
// and size.
func ValidateImage(contentType string, size int64) error {
	if !allowedImageTypes[contentType] {
		allowed := make([]string, 0, len(allowedImageTypes))
		for t := range allowedImageTypes {
			allowed = append(allowed, t)
		}
		sort.Strings(allowed)
		return &ImageValidationError{Reason: fmt.Sprintf(
			"unsupported file type %q; allowed: %s", contentType, strings.Join(allowed, ", "))}
	}
	if size > MaxImageBytes {
		return &ImageValidationError{Reason: fmt.Sprintf(
			"image file size (%d bytes) exceeds the %d MB limit", size, MaxImageBytes>>20)}
	}
	return nil
}

// signature computes the Cloudinary request signature: the sorted
// params joined with '&', the API secret appended, SHA-1 hex digest.
func (u *ImageUploader) signature(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + u.APISecret))
	return hex.EncodeToString(sum[:])
}

// Upload validates the file and posts it to Cloudinary, returning the
// HTTPS URL of the transformed image. Validation failures come back as
// *ImageValidationError; anything else wraps ErrUploadFailed.
func (u *ImageUploader) Upload(ctx context.Context, file io.Reader, contentType string, size int64, userID string) (string, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return "", err
	}
	if u.CloudName == "" || u.APIKey == "" || u.APISecret == "" {
		return "", fmt.Errorf("%w: cloudinary not configured", ErrUploadFailed)
	}

	params := map[string]string{
		"public_id":      profileImageFolder + "/" + userID,
		"overwrite":      "true",
		"transformation": profileTransformation,
		"timestamp":      fmt.Sprintf("%d", time.Now().Unix()),
	}
	sig := u.signature(params)

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}
	if err := mw.WriteField("api_key", u.APIKey); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.WriteField("signature", sig); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	fw, err := mw.CreateFormFile("file", "image")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(fw, io.LimitReader(file, MaxImageBytes+1)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.SecureURL == "" {
		return "", fmt.Errorf("%w: malformed response", ErrUploadFailed)
	}
	return out.SecureURL, nil
}
