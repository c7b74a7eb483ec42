// Package texture loads optional equirectangular environment maps used
// to replace the parametric sky.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
	"math"
	"os"

	"github.com/echoflaresat/tiff"
	lru "github.com/hashicorp/golang-lru"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/vectors"
)

// Texture is a decoded environment map sampled by view direction.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

// Decoded textures are cached by path; scene files routinely reuse the
// same map across frames of a sequence.
var cache = mustCache(8)

func mustCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err) // only fails for size <= 0
	}
	return c
}

// Load decodes the image at path, trying TIFF first and falling back to
// the stdlib codecs. Results are cached.
func Load(path string) (*Texture, error) {
	if v, ok := cache.Get(path); ok {
		return v.(*Texture), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		// fallback to image codecs
		if _, err := f.Seek(0, 0); err != nil {
			return nil, fmt.Errorf("rewind texture: %w", err)
		}
		img, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", path, err)
		}
	}

	t := &Texture{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		img:    img,
	}
	cache.Add(path, t)
	return t, nil
}

// SampleDirection maps a unit direction to lat-lon coordinates and
// returns the nearest texel. No interpolation.
func (t *Texture) SampleDirection(d vectors.Vec3) colors.Color4 {
	lat := math.Asin(clamp(d.Y, -1, 1))
	lon := math.Atan2(d.Z, d.X)
	if lon < 0 {
		lon += 2 * math.Pi
	}

	u := lon / (2 * math.Pi) * float64(t.Width-1)
	v := (0.5 - lat/math.Pi) * float64(t.Height-1)

	x := int(u)
	y := int(v)
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}

	return colors.FromStandardColor(t.img.At(x, y))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
