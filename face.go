package seamcarve

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/seamcarve/utils"
	pigo "github.com/esimov/pigo/core"
)

// FaceDetector finds the faces of an image with the pigo cascade classifier.
// The detected faces can be rasterized into a protection mask with MaskFromRects.
type FaceDetector struct {
	Angle     float64 // plane rotated faces angle, in the [0, 1] range
	MinSize   int     // minimum face size, in pixels of the detection image
	Threshold float32 // minimum detection score
	IoU       float64 // intersection over union threshold used to cluster detections
	MaxDim    int     // the detection runs on a copy of the image fitted into MaxDim x MaxDim

	classifier *pigo.Pigo
}

// NewFaceDetector unpacks the cascade classifier file and returns a detector with the default settings.
func NewFaceDetector(cascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &FaceDetector{
		MinSize:    20,
		Threshold:  5.0,
		IoU:        0.2,
		MaxDim:     1000,
		classifier: classifier,
	}, nil
}

// Detect returns the bounding boxes of the detected faces, in the coordinate space of the source image.
func (fd *FaceDetector) Detect(src image.Image) []image.Rectangle {
	if src == nil || src.Bounds().Empty() {
		return nil
	}
	img := imgToNRGBA(src)
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	// Faces are searched on a smaller copy of large images.
	scale := 1.0
	if fd.MaxDim > 0 && (dx > fd.MaxDim || dy > fd.MaxDim) {
		img = imaging.Fit(img, fd.MaxDim, fd.MaxDim, imaging.Lanczos)
		scale = float64(dx) / float64(img.Bounds().Dx())
	}
	cols, rows := img.Bounds().Dx(), img.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     fd.MinSize,
		MaxSize:     utils.Max(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: grayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := fd.classifier.RunCascade(cParams, fd.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = fd.classifier.ClusterDetections(dets, fd.IoU)

	var faces []image.Rectangle
	for _, det := range dets {
		if det.Q <= fd.Threshold {
			continue
		}
		rect := detectionRect(det.Row, det.Col, det.Scale, scale, image.Rect(0, 0, dx, dy))
		if !rect.Empty() {
			faces = append(faces, rect)
		}
	}
	return faces
}

// detectionRect converts the detection center and size to a rectangle,
// scales it back to the source image and clips it to the image bounds.
func detectionRect(row, col, size int, scale float64, bounds image.Rectangle) image.Rectangle {
	half := float64(size) / 2
	rect := image.Rect(
		int(math.Round((float64(col)-half)*scale)),
		int(math.Round((float64(row)-half)*scale)),
		int(math.Round((float64(col)+half)*scale)),
		int(math.Round((float64(row)+half)*scale)),
	)
	return rect.Intersect(bounds)
}
