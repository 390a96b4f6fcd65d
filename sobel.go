package seamcarve

import "math"

// DefaultAperture is the size of the Sobel kernel used when none is provided.
const DefaultAperture = 3

type kernel []float64

// sobelKernels returns the separable derivative and smoothing kernels of the
// Sobel operator for the given aperture. An aperture of 1 means a plain
// central difference without smoothing.
// See https://en.wikipedia.org/wiki/Sobel_operator
func sobelKernels(aperture int) (deriv, smooth kernel, err error) {
	if aperture < 1 || aperture > 7 || aperture%2 == 0 {
		return nil, nil, ErrInvalidAperture
	}
	if aperture == 1 {
		return kernel{-1, 0, 1}, kernel{1}, nil
	}
	smooth = binomial(aperture)
	deriv = convolve(binomial(aperture-2), kernel{-1, 0, 1})

	return deriv, smooth, nil
}

// binomial returns the n-th row of the Pascal triangle (n values).
func binomial(n int) kernel {
	k := make(kernel, n)
	k[0] = 1
	for i := 1; i < n; i++ {
		for j := i; j > 0; j-- {
			k[j] += k[j-1]
		}
	}
	return k
}

func convolve(a, b kernel) kernel {
	out := make(kernel, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}
	return out
}

// reflect maps an out of range index back into [0, n) by mirroring it
// around the border pixel, without repeating the border (dcb|abcd|cba).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// sobel computes the absolute horizontal and vertical derivatives of the
// grayscale pixel array, each saturated to the [0, 255] range.
func sobel(gray []uint8, width, height, aperture int) (gx, gy []float64, err error) {
	deriv, smooth, err := sobelKernels(aperture)
	if err != nil {
		return nil, nil, err
	}

	gx = separable(gray, width, height, deriv, smooth)
	gy = separable(gray, width, height, smooth, deriv)

	for i := range gx {
		gx[i] = saturate(math.Abs(gx[i]))
		gy[i] = saturate(math.Abs(gy[i]))
	}
	return gx, gy, nil
}

// separable applies the kx kernel along the rows and the ky kernel along the columns.
func separable(gray []uint8, width, height int, kx, ky kernel) []float64 {
	rx, ry := len(kx)/2, len(ky)/2
	tmp := make([]float64, width*height)
	dst := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for i, k := range kx {
				sum += k * float64(gray[y*width+reflect(x+i-rx, width)])
			}
			tmp[y*width+x] = sum
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for i, k := range ky {
				sum += k * tmp[reflect(y+i-ry, height)*width+x]
			}
			dst[y*width+x] = sum
		}
	}
	return dst
}

func saturate(v float64) float64 {
	return math.Min(math.Round(v), 255)
}
