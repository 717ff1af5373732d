package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/msomdec/employee-pass/internal/domain"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

const msgBadPhoto = "Photo must be a PNG or JPEG image."

// MaxPhotoSide bounds both photo dimensions. Decoding allocates the full
// pixel buffer, so the header is checked before any pixels are read.
const MaxPhotoSide = 4096

var errPhotoTooLarge = fmt.Errorf("%w: photo exceeds %dx%d pixels", domain.ErrInvalidInput, MaxPhotoSide, MaxPhotoSide)

// EncodePhoto converts uploaded image bytes to the data URL stored on a record.
// Empty input returns "" so presence validation can report the missing field.
// The type is sniffed from the bytes; anything but a PNG or JPEG that
// decodes completely within MaxPhotoSide is rejected.
func EncodePhoto(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	mime := http.DetectContentType(data)
	if mime != mimeJPEG && mime != mimePNG {
		return "", domain.Invalid(msgBadPhoto)
	}
	if _, err := decodeBounded(data); err != nil {
		return "", domain.Invalid(msgBadPhoto)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// SplitPhoto parses a data URL into its mime type and raw bytes.
func SplitPhoto(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: photo is not a data URL", domain.ErrInvalidInput)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: photo has no payload", domain.ErrInvalidInput)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: photo is not base64 encoded", domain.ErrInvalidInput)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode photo payload: %w", err)
	}
	return mime, data, nil
}

// DecodePhoto decodes the image held in a record's data URL. Stored photos
// get the same size check as uploads.
func DecodePhoto(dataURL string) (image.Image, error) {
	_, data, err := SplitPhoto(dataURL)
	if err != nil {
		return nil, err
	}
	return decodeBounded(data)
}

func decodeBounded(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxPhotoSide || cfg.Height > MaxPhotoSide {
		return nil, errPhotoTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo image: %w", err)
	}
	return img, nil
}
