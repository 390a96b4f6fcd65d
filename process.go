package seamcarve

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

// Process decodes the image read from r, resizes it and encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
// The output format follows the extension of w when it is a file, otherwise it is jpeg.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	img, err := decodeImg(r)
	if err != nil {
		return err
	}

	res, err := p.ProcessImage(img)
	if err != nil {
		return err
	}
	if p.Debug && p.debugMask != nil {
		res = DebugOverlay(res, p.debugMask, DebugColor)
	}

	return encodeImg(w, res, outputExt(w), p.Quality)
}

// ProcessImage resizes an already decoded image. When a face detector is
// set, a fully protected rectangle is added to the mask over each detected
// face, so the seams go around them whenever a cheaper path exists.
func (p *Processor) ProcessImage(src image.Image) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	img := imgToNRGBA(src)

	mask := p.Mask
	if mask != nil && mask.Bounds().Size() != img.Bounds().Size() {
		return nil, errors.Wrapf(ErrMaskSize, "mask %v, image %v", mask.Bounds().Size(), img.Bounds().Size())
	}
	if p.FaceDetector != nil && (p.Mode == "" || p.Mode == ModeSeam) {
		if faces := p.FaceDetector.Detect(img); len(faces) > 0 {
			mask = MergeMasks(mask, MaskFromRects(img.Bounds(), faces, MaxBias))
		}
	}
	return p.resize(img, mask)
}
