package inference

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ErrDecode marks an undecodable upload. Callers map it to a client error.
var ErrDecode = errors.New("cannot decode image")

// Keras caffe-convention channel means (BGR order).
const (
	meanBlue  = 103.939
	meanGreen = 116.779
	meanRed   = 123.68
)

// Preprocessor turns raw image bytes into the float32 tensor the model
// consumes: RGB, stretched exactly to Height×Width (no letterboxing), NHWC
// with a leading batch dimension of one.
//
// Pixel scaling follows the ImageNet caffe convention (channels reordered to
// BGR, channel means subtracted) when ImageNet is set. Otherwise values are
// scaled linearly to [0,1] by dividing by 255 — a deliberate, deterministic
// fallback that silently changes model accuracy if the model was trained
// against the ImageNet convention, so the choice is logged at startup.
type Preprocessor struct {
	Height   int
	Width    int
	ImageNet bool
}

// Normalize decodes raw bytes and produces a tensor of shape [1,H,W,3] in
// row-major order. Decode failures return ErrDecode.
func (p *Preprocessor) Normalize(raw []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Aspect-distorting fit: the box is filled exactly.
	stretched := resize.Resize(uint(p.Width), uint(p.Height), img, resize.Lanczos3)

	bounds := stretched.Bounds()
	data := make([]float32, 1*p.Height*p.Width*3)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			r16, g16, b16, _ := stretched.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r := float32(r16 >> 8)
			g := float32(g16 >> 8)
			b := float32(b16 >> 8)

			base := (y*p.Width + x) * 3
			if p.ImageNet {
				data[base+0] = b - meanBlue
				data[base+1] = g - meanGreen
				data[base+2] = r - meanRed
			} else {
				data[base+0] = r / 255.0
				data[base+1] = g / 255.0
				data[base+2] = b / 255.0
			}
		}
	}
	return data, nil
}

// Shape reports the tensor shape Normalize produces.
func (p *Preprocessor) Shape() []int64 {
	return []int64{1, int64(p.Height), int64(p.Width), 3}
}
