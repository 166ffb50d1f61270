// Package images prepares bitmap data for embedding into the output
// document: format sniffing, decoding, SVG rasterization, fitting into the
// layout box and PNG encoding.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"sketchgen/config"
)

var errNotImage = errors.New("not an image")

// Bitmap is PNG encoded image data.
type Bitmap struct {
	Data   []byte
	Format string // format of the source data
	Width  int
	Height int
}

// Decode sniffs data and decodes it. SVG sources are rasterized to fit
// into w x h.
func Decode(data []byte, w, h int) (image.Image, string, error) {
	if IsSVG(data) {
		img, err := RasterizeSVG(data, w, h)
		if err != nil {
			return nil, "", fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return img, "svg", nil
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, "", err
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, "", fmt.Errorf("%w: %s", errNotImage, kind.Extension)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode %s: %w", kind.MIME.Value, err)
	}
	return img, format, nil
}

// Fit resizes img for a w x h box. Non positive dimensions keep the image
// untouched.
func Fit(img image.Image, w, h int, mode config.ImageResizeMode) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	switch mode {
	case config.ImageResizeModeContain:
		return imaging.Fit(img, w, h, imaging.Lanczos)
	case config.ImageResizeModeStretch:
		return imaging.Resize(img, w, h, imaging.Lanczos)
	default:
		return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	}
}

// EncodePNG encodes img with best compression. Opaque grayscale images are
// stored with a single channel.
func EncodePNG(img image.Image) ([]byte, error) {
	if grayOpaque(img) {
		gray := image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
		img = gray
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Prepare decodes data, fits it into the w x h box and encodes the result.
func Prepare(data []byte, w, h int, mode config.ImageResizeMode) (*Bitmap, error) {
	img, format, err := Decode(data, w, h)
	if err != nil {
		return nil, err
	}
	img = Fit(img, w, h, mode)
	out, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &Bitmap{Data: out, Format: format, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
}

// Placeholder returns the bitmap substituted for images which cannot be
// loaded.
var Placeholder = sync.OnceValue(func() *Bitmap {
	const size = 64
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.NRGBA{0xee, 0xee, 0xee, 0xff}}, image.Point{}, draw.Src)
	mark := color.NRGBA{0xcc, 0x33, 0x33, 0xff}
	for i := range size {
		img.SetNRGBA(i, i, mark)
		img.SetNRGBA(size-1-i, i, mark)
		img.SetNRGBA(i, 0, mark)
		img.SetNRGBA(i, size-1, mark)
		img.SetNRGBA(0, i, mark)
		img.SetNRGBA(size-1, i, mark)
	}
	data, err := EncodePNG(img)
	if err != nil {
		// this should never happen
		panic(err)
	}
	return &Bitmap{Data: data, Format: "png", Width: size, Height: size}
})

// grayOpaque reports whether every pixel of img is fully opaque with equal
// color channels.
func grayOpaque(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A != 0xff || c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}
