package texture

import (
	"image"
	"image/color"
)

var (
	checkerLight = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	checkerDark  = color.RGBA{R: 70, G: 110, B: 200, A: 255}
)

// Checkerboard generates a size x size image with cells x cells squares.
// It stands in when no texture file is configured.
func Checkerboard(size, cells int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	if cells < 1 {
		cells = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := checkerLight
			if (x/cell+y/cell)%2 == 1 {
				c = checkerDark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
