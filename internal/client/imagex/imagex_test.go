package imagex

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestDownscale_LargerAxisBounded(t *testing.T) {
	src := pngBytes(t, 2000, 1000)

	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true})
	require.True(t, resized)

	w, h := dims(t, out)
	require.Equal(t, 1200, w)
	require.Equal(t, 600, h)
	require.Equal(t, "image/jpeg", http.DetectContentType(out))
}

func TestDownscale_PortraitOrientation(t *testing.T) {
	src := pngBytes(t, 600, 3000)

	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true})
	require.True(t, resized)

	w, h := dims(t, out)
	require.Equal(t, 1200, h)
	require.Equal(t, 240, w)
}

func TestDownscale_NeverUpscales(t *testing.T) {
	src := pngBytes(t, 300, 200)

	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true})

	require.False(t, resized)
	require.Equal(t, src, out)
}

func TestDownscale_UnconstrainedDeviceIsIdentity(t *testing.T) {
	src := pngBytes(t, 5000, 5000)
	out, resized := Downscale(context.Background(), src, Options{})
	require.False(t, resized)
	require.Equal(t, src, out)
}

func TestDownscale_NonImagePassthrough(t *testing.T) {
	src := []byte("%PDF-1.4 definitely not an image")
	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true})
	require.False(t, resized)
	require.Equal(t, src, out)
}

func TestDownscale_CorruptImagePassthrough(t *testing.T) {
	src := pngBytes(t, 100, 100)
	src = src[:len(src)/2] // truncate: sniffs as png, fails to decode
	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true})
	require.False(t, resized)
	require.Equal(t, src, out)
}

func TestDownscale_BlownBudgetPassthrough(t *testing.T) {
	src := pngBytes(t, 2000, 2000)
	out, resized := Downscale(context.Background(), src, Options{
		ConstrainedDevice: true,
		DecodeBudget:      time.Nanosecond,
	})
	require.False(t, resized)
	require.Equal(t, src, out)
}

func TestDownscale_CustomMaxDimension(t *testing.T) {
	src := pngBytes(t, 1000, 500)

	out, resized := Downscale(context.Background(), src, Options{ConstrainedDevice: true, MaxDimension: 400})
	require.True(t, resized)

	w, h := dims(t, out)
	require.Equal(t, 400, w)
	require.Equal(t, 200, h)
}
