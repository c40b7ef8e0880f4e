// Package texture decodes images and uploads them as sampled textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("texture: empty image")

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

type decoder func(io.Reader) (image.Image, error)

// TGA has no signature, so it is the fallback when nothing else matches.
var signatures = []struct {
	magic  string
	offset int
	decode decoder
}{
	{"\x89PNG\r\n\x1a\n", 0, png.Decode},
	{"\xff\xd8", 0, jpeg.Decode},
	{"GIF8", 0, gif.Decode},
	{"BM", 0, bmp.Decode},
	{"WEBP", 8, webp.Decode},
}

// Decode decodes a png, jpeg, gif, bmp, webp or tga image into RGBA.
func Decode(r io.Reader) (*image.RGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := sniff(data)(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img)
}

func sniff(data []byte) decoder {
	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if len(data) >= end && string(data[sig.offset:end]) == sig.magic {
			return sig.decode
		}
	}
	return tga.Decode
}

// ToRGBA converts img to an RGBA image anchored at the origin.
func ToRGBA(img image.Image) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}
