package plan

import (
	"bytes"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDecodeCubeImagePNG(t *testing.T) {
	img := identityImage(33)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	c, err := decodeCubeImage(&buf)
	if err != nil {
		t.Fatalf("decodeCubeImage: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil cube")
	}
}

// TestDecodeCubeImageBMP exercises the blank golang.org/x/image/bmp import:
// decodeCubeImage goes through the generic image.Decode registry, so a
// look-file saved as BMP must decode the same way a PNG one does.
func TestDecodeCubeImageBMP(t *testing.T) {
	img := identityImage(33)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	c, err := decodeCubeImage(&buf)
	if err != nil {
		t.Fatalf("decodeCubeImage: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil cube")
	}
}

func TestDecodeCubeImageRejectsUnknownSize(t *testing.T) {
	img := identityImage(10)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if _, err := decodeCubeImage(&buf); err == nil {
		t.Fatal("expected error for a non-cube-shaped image")
	}
}
