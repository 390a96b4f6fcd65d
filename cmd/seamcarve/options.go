package main

import (
	"fmt"
	"image"
	"os"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/internal/config"
	"github.com/spf13/cobra"
)

// addCarverFlags registers the energy map related flags shared by the commands.
func addCarverFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().Int("aperture", def.Carver.Aperture, "Sobel kernel size (1, 3, 5 or 7)")
	cmd.Flags().Int("sobel", def.Carver.SobelThreshold, "Sobel filter threshold")
	cmd.Flags().Float64("blur", def.Carver.BlurRadius, "Blur radius applied before the edge detection")
	cmd.Flags().String("mask", "", "Protection mask image, brighter pixels are kept")
}

// addFaceFlags registers the face detection flags shared by the commands.
func addFaceFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().String("cc", "", "Cascade classifier file")
	cmd.Flags().Float64("angle", def.Face.Angle, "Plane rotated faces angle")
	cmd.Flags().Int("min-face", def.Face.MinSize, "Minimum face size")
}

// loadConfig reads the configuration file given with the --config flag and
// overrides its values with the flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, fn func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			fn()
		}
	}
	set("aperture", func() { cfg.Carver.Aperture, _ = flags.GetInt("aperture") })
	set("sobel", func() { cfg.Carver.SobelThreshold, _ = flags.GetInt("sobel") })
	set("blur", func() { cfg.Carver.BlurRadius, _ = flags.GetFloat64("blur") })
	set("filter", func() { cfg.Carver.Filter, _ = flags.GetString("filter") })
	set("mode", func() { cfg.Carver.Mode, _ = flags.GetString("mode") })
	set("ppi", func() { cfg.Carver.PPI, _ = flags.GetInt("ppi") })
	set("cc", func() { cfg.Face.Cascade, _ = flags.GetString("cc") })
	set("angle", func() { cfg.Face.Angle, _ = flags.GetFloat64("angle") })
	set("min-face", func() { cfg.Face.MinSize, _ = flags.GetInt("min-face") })
	set("quality", func() { cfg.Output.Quality, _ = flags.GetInt("quality") })
	set("bg", func() { cfg.Output.Background, _ = flags.GetString("bg") })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newFaceDetector returns nil when no cascade file is configured.
func newFaceDetector(cfg *config.Config) (*seamcarve.FaceDetector, error) {
	if cfg.Face.Cascade == "" {
		return nil, nil
	}
	cascade, err := os.ReadFile(cfg.Face.Cascade)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	fd, err := seamcarve.NewFaceDetector(cascade)
	if err != nil {
		return nil, err
	}
	fd.Angle = cfg.Face.Angle
	fd.MinSize = cfg.Face.MinSize
	fd.Threshold = cfg.Face.Threshold
	fd.IoU = cfg.Face.IoU
	fd.MaxDim = cfg.Face.MaxDim
	return fd, nil
}

// loadMask decodes the mask image given with the --mask flag.
func loadMask(cmd *cobra.Command) (*image.Gray, error) {
	path, _ := cmd.Flags().GetString("mask")
	if path == "" {
		return nil, nil
	}
	img, err := seamcarve.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not load the mask: %w", err)
	}
	return seamcarve.MaskFromImage(img), nil
}

// newProcessor builds a processor from the configuration.
func newProcessor(cmd *cobra.Command, cfg *config.Config) (*seamcarve.Processor, error) {
	mask, err := loadMask(cmd)
	if err != nil {
		return nil, err
	}
	p := &seamcarve.Processor{Mask: mask}
	p.Aperture = cfg.Carver.Aperture
	p.SobelThreshold = cfg.Carver.SobelThreshold
	p.BlurRadius = cfg.Carver.BlurRadius
	p.Quality = cfg.Output.Quality

	if p.Filter, err = seamcarve.ParseFilter(cfg.Carver.Filter); err != nil {
		return nil, err
	}
	if p.Mode, err = seamcarve.ParseMode(cfg.Carver.Mode); err != nil {
		return nil, err
	}
	if p.FaceDetector, err = newFaceDetector(cfg); err != nil {
		return nil, err
	}
	return p, nil
}
