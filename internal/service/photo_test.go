package service_test

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/service"
)

// testPNG returns a small solid-colour PNG.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h RGB
// image, with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolour

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := append([]byte("IHDR"), ihdr...)
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func testPhotoURL(t *testing.T) string {
	t.Helper()
	url, err := service.EncodePhoto(testPNG(t, 8, 6))
	if err != nil {
		t.Fatalf("EncodePhoto: %v", err)
	}
	return url
}

func TestEncodePhoto_PNG(t *testing.T) {
	url, err := service.EncodePhoto(testPNG(t, 4, 4))
	if err != nil {
		t.Fatalf("EncodePhoto: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data URL prefix: %.40s", url)
	}
}

func TestEncodePhoto_Empty(t *testing.T) {
	url, err := service.EncodePhoto(nil)
	if err != nil {
		t.Fatalf("EncodePhoto(nil): %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty string, got %q", url)
	}
}

func TestEncodePhoto_RejectsNonImage(t *testing.T) {
	_, err := service.EncodePhoto([]byte("just some text, not a picture"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if msg := domain.UserMessage(err, ""); msg != "Photo must be a PNG or JPEG image." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDecodePhoto_RoundTrip(t *testing.T) {
	img, err := service.DecodePhoto(testPhotoURL(t))
	if err != nil {
		t.Fatalf("DecodePhoto: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("expected 8x6 image, got %v", b)
	}
}

func TestDecodePhoto_Malformed(t *testing.T) {
	cases := []string{
		"",
		"http://example.com/a.png",
		"data:image/png;base64",
		"data:image/png,rawbytes",
		"data:image/png;base64,!!!",
		"data:image/png;base64,aGVsbG8=",
	}
	for _, c := range cases {
		if _, err := service.DecodePhoto(c); err == nil {
			t.Errorf("DecodePhoto(%q): expected error", c)
		}
	}
}

func TestEncodePhoto_RejectsOversizedDimensions(t *testing.T) {
	for _, dims := range [][2]uint32{
		{60000, 60000},
		{service.MaxPhotoSide + 1, 10},
		{10, service.MaxPhotoSide + 1},
	} {
		_, err := service.EncodePhoto(pngHeader(dims[0], dims[1]))
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%dx%d: expected ErrInvalidInput, got %v", dims[0], dims[1], err)
		}
		if msg := domain.UserMessage(err, ""); msg != "Photo must be a PNG or JPEG image." {
			t.Fatalf("%dx%d: unexpected message %q", dims[0], dims[1], msg)
		}
	}
}

func TestEncodePhoto_RejectsUndecodableBody(t *testing.T) {
	valid := testPNG(t, 16, 16)
	cases := map[string][]byte{
		"header only":     pngHeader(10, 10),
		"truncated":       valid[:len(valid)/2],
		"signature+junk":  append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...),
		"jpeg magic+junk": append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x11}, 64)...),
	}
	for name, data := range cases {
		if _, err := service.EncodePhoto(data); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestEncodePhoto_AcceptsMaxSide(t *testing.T) {
	if _, err := service.EncodePhoto(testPNG(t, service.MaxPhotoSide, 1)); err != nil {
		t.Fatalf("EncodePhoto at the limit: %v", err)
	}
}

func TestDecodePhoto_RejectsOversizedStoredPhoto(t *testing.T) {
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader(60000, 60000))

	if _, err := service.DecodePhoto(url); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
