package seamcarve

import "github.com/pkg/errors"

// The errors returned by the carving pipeline. They are wrapped with
// additional context, so they should be checked with errors.Is.
var (
	ErrInvalidInput           = errors.New("invalid input image")
	ErrInvalidSize            = errors.New("target width and height should be positive")
	ErrUnsupportedEnlargement = errors.New("seam carving supports only image reduction")
	ErrInvalidAperture        = errors.New("gradient aperture should be one of 1, 3, 5 or 7")
	ErrMaskSize               = errors.New("mask size does not match the image size")
	ErrInvalidSeam            = errors.New("seam does not fit the image")
)
