// Package images prepares uploads: decoded pictures are downscaled and
// re-encoded as JPEG until they fit the host's size limit.
package images

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxDimension = 1920
	maxBytes     = 1_000_000
	startQuality = 90
	floorQuality = 50
	qualityStep  = 10
)

// Shrink re-encodes an image to JPEG under ~1MB: first downscaling so the
// longest side is at most 1920px, then dropping encode quality in steps of
// 10 until the target is met or the quality floor of 50 is reached. The
// result of the floor pass is returned even when it is still over target.
func Shrink(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	img = downscale(img)

	var buf bytes.Buffer
	for q := startQuality; ; q -= qualityStep {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		if buf.Len() <= maxBytes || q <= floorQuality {
			return buf.Bytes(), nil
		}
	}
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxDimension {
		return img
	}

	ratio := float64(maxDimension) / float64(long)
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
