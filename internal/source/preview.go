package source

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// FitzPreview renders slides of a presentation through MuPDF. It is only used
// for troubleshooting thumbnails; durations never depend on it.
type FitzPreview struct {
	doc  *fitz.Document
	path string
}

func NewFitzPreview(path string) (*FitzPreview, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	return &FitzPreview{doc: doc, path: path}, nil
}

func (f *FitzPreview) PageCount() int {
	return f.doc.NumPage()
}

// Render rasterizes one slide and scales it down to width pixels. A width of
// zero keeps the rendered size.
func (f *FitzPreview) Render(index, dpi, width int) (image.Image, error) {
	if index < 0 || index >= f.doc.NumPage() {
		return nil, fmt.Errorf("slide %d out of range (%d slides)", index+1, f.doc.NumPage())
	}
	img, err := f.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render slide %d: %w", index+1, err)
	}
	return Downscale(img, width), nil
}

func (f *FitzPreview) Close() error {
	return f.doc.Close()
}

// Downscale keeps the aspect ratio. Images already narrower than width are
// returned as is.
func Downscale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
