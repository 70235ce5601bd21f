// Package imagex downsamples avatar images before upload on constrained
// devices, trading resolution for a smaller payload on slow links.
package imagex

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/accion2025/buencuidar/internal/timex"
)

const (
	defaultMaxDimension = 1200
	defaultQuality      = 85
	defaultDecodeBudget = 5 * time.Second
)

// Options controls Downscale. Zero values take the documented defaults.
type Options struct {
	// MaxDimension bounds the larger axis of the output. Default 1200.
	MaxDimension int
	// Quality is the JPEG re-encode quality. Default 85.
	Quality int
	// ConstrainedDevice enables processing; on capable devices the input is
	// returned unchanged so desktop quality is never regressed.
	ConstrainedDevice bool
	// DecodeBudget bounds the image decode. Default 5s.
	DecodeBudget time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = defaultMaxDimension
	}
	if o.Quality <= 0 {
		o.Quality = defaultQuality
	}
	if o.DecodeBudget <= 0 {
		o.DecodeBudget = defaultDecodeBudget
	}
	return o
}

// Downscale re-encodes data as a JPEG whose larger axis is at most
// opts.MaxDimension, reporting whether it did so. It never upscales and it
// never fails: non-image payloads, decode errors, blown decode budgets and
// encode errors all degrade to returning the input unchanged.
func Downscale(ctx context.Context, data []byte, opts Options) ([]byte, bool) {
	opts = opts.withDefaults()

	if !opts.ConstrainedDevice {
		return data, false
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return data, false
	}

	img, err := timex.Race(ctx, opts.DecodeBudget, func(ctx context.Context) (image.Image, error) {
		decoded, _, err := image.Decode(bytes.NewReader(data))
		return decoded, err
	})
	if err != nil {
		return data, false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= opts.MaxDimension && h <= opts.MaxDimension {
		return data, false
	}

	scale := float64(opts.MaxDimension) / float64(w)
	if s := float64(opts.MaxDimension) / float64(h); s < scale {
		scale = s
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return data, false
	}
	return buf.Bytes(), true
}
