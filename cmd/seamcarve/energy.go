package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/esimov/seamcarve"
	"github.com/spf13/cobra"
)

var energyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Write the energy map of an image as a grayscale PNG",
	RunE:  runEnergy,
}

func init() {
	energyCmd.Flags().StringP("in", "i", "", "Source image file")
	energyCmd.Flags().StringP("out", "o", "", "Destination PNG file")
	energyCmd.Flags().String("seam", "", "Draw the cheapest seam (vertical or horizontal)")
	addCarverFlags(energyCmd)
	addFaceFlags(energyCmd)
	energyCmd.MarkFlagRequired("in")
	energyCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(energyCmd)
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newProcessor(cmd, cfg)
	if err != nil {
		return err
	}

	inputPath, _ := cmd.Flags().GetString("in")
	outputPath, _ := cmd.Flags().GetString("out")
	seamDir, _ := cmd.Flags().GetString("seam")

	img, err := seamcarve.DecodeFile(inputPath)
	if err != nil {
		return err
	}
	mask := p.Mask
	if p.FaceDetector != nil {
		if faces := p.FaceDetector.Detect(img); len(faces) > 0 {
			mask = seamcarve.MergeMasks(mask, seamcarve.MaskFromRects(img.Bounds(), faces, seamcarve.MaxBias))
		}
	}

	energy, err := p.ComputeEnergy(img, mask)
	if err != nil {
		return fmt.Errorf("computing the energy map: %w", err)
	}

	var res image.Image = energy.Image()
	if seamDir != "" {
		dir, err := seamcarve.ParseDirection(seamDir)
		if err != nil {
			return err
		}
		seam, cost, err := seamcarve.FindSeam(energy, dir, seamcarve.MinEnergy)
		if err != nil {
			return err
		}
		res = seamcarve.DrawSeam(res, seam, dir, seamcarve.SeamColor)
		fmt.Fprintf(os.Stderr, "Cheapest %v seam cost: %.2f\n", dir, cost)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, res); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return f.Close()
}
