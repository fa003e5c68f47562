package contour

import (
	"image"
	"image/color"

	"github.com/ivlev/framescan/internal/system"
)

// toGrayscale converts an image to grayscale. A *image.Gray input is
// returned as is; the pipeline never writes to its inputs.
func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// gaussianBlur5 applies the fixed 5×5 Gaussian kernel (binomial weights,
// sum 256). Border pixels use edge replication so the output keeps the
// input dimensions.
func gaussianBlur5(gray *image.Gray) *image.Gray {
	kernel := [5]int{1, 4, 6, 4, 1}

	bounds := gray.Bounds()
	out := system.GetGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum := 0
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					px := clampInt(x+kx, bounds.Min.X, bounds.Max.X-1)
					py := clampInt(y+ky, bounds.Min.Y, bounds.Max.Y-1)
					sum += int(gray.GrayAt(px, py).Y) * kernel[ky+2] * kernel[kx+2]
				}
			}
			out.SetGray(x, y, color.Gray{Y: uint8(sum / 256)})
		}
	}

	return out
}

// adaptiveThreshold binarizes gray against the mean of a block×block window
// around each pixel. With invert false, pixels brighter than their local
// mean by more than offset become foreground (template edges lit from the
// front); with invert true the comparison flips for backlit rigs where the
// template is the dark region. The window is clipped at the image border.
func adaptiveThreshold(gray *image.Gray, block, offset int, invert bool) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	half := block / 2

	// Summed-area table, one row/column of zero padding.
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	out := system.GetGray(bounds)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := maxInt(x-half, 0), maxInt(y-half, 0)
			x1, y1 := minInt(x+half+1, w), minInt(y+half+1, h)

			sum := integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
				integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := int(sum / int64((x1-x0)*(y1-y0)))

			v := int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			fg := v > mean+offset
			if invert {
				fg = v < mean-offset
			}

			if fg {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: 255})
			} else {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: 0})
			}
		}
	}

	return out
}

// morphClose3 is dilation followed by erosion with a 3×3 element.
func morphClose3(img *image.Gray) *image.Gray {
	tmp := dilate3(img)
	out := erode3(tmp)
	system.PutGray(tmp)
	return out
}

// morphOpen3 is erosion followed by dilation with a 3×3 element.
func morphOpen3(img *image.Gray) *image.Gray {
	tmp := erode3(img)
	out := dilate3(tmp)
	system.PutGray(tmp)
	return out
}

// dilate3 performs one morphological dilation with a 3×3 structuring
// element. The neighborhood is clipped at the image border.
func dilate3(img *image.Gray) *image.Gray {
	return morph3(img, func(maxVal, v uint8) uint8 {
		if v > maxVal {
			return v
		}
		return maxVal
	}, 0)
}

// erode3 performs one morphological erosion with a 3×3 structuring element.
func erode3(img *image.Gray) *image.Gray {
	return morph3(img, func(minVal, v uint8) uint8 {
		if v < minVal {
			return v
		}
		return minVal
	}, 255)
}

func morph3(img *image.Gray, pick func(acc, v uint8) uint8, seed uint8) *image.Gray {
	bounds := img.Bounds()
	out := system.GetGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			acc := seed
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clampInt(x+kx, bounds.Min.X, bounds.Max.X-1)
					py := clampInt(y+ky, bounds.Min.Y, bounds.Max.Y-1)
					acc = pick(acc, img.GrayAt(px, py).Y)
				}
			}
			out.SetGray(x, y, color.Gray{Y: acc})
		}
	}

	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
