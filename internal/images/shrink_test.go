package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"
)

// noisy makes a picture that compresses poorly, to force the quality loop.
func noisy(w, h int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func TestShrink_DownscalesLargeImages(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, noisy(3000, 1500), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}

	out, err := Shrink(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		t.Fatalf("want max side <= %d, got %dx%d", maxDimension, b.Dx(), b.Dy())
	}
}

func TestShrink_SmallImagePassesUnscaled(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, noisy(200, 100)); err != nil {
		t.Fatal(err)
	}

	out, err := Shrink(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if format != "jpeg" {
		t.Fatalf("want jpeg re-encode, got %s", format)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("small image should keep its size, got %dx%d", b.Dx(), b.Dy())
	}
	if len(out) > maxBytes {
		t.Fatalf("small image should fit the target, got %d bytes", len(out))
	}
}

func TestShrink_RejectsGarbage(t *testing.T) {
	if _, err := Shrink([]byte("not an image")); err == nil {
		t.Fatal("want decode error")
	}
}
