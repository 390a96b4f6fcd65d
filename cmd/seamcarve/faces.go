package main

import (
	"errors"
	"fmt"

	"github.com/esimov/seamcarve"
	"github.com/spf13/cobra"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Print the faces detected on an image",
	RunE:  runFaces,
}

func init() {
	facesCmd.Flags().StringP("in", "i", "", "Source image file")
	addFaceFlags(facesCmd)
	facesCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(facesCmd)
}

func runFaces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fd, err := newFaceDetector(cfg)
	if err != nil {
		return err
	}
	if fd == nil {
		return errors.New("a cascade classifier file is required, use --cc")
	}

	inputPath, _ := cmd.Flags().GetString("in")
	img, err := seamcarve.DecodeFile(inputPath)
	if err != nil {
		return err
	}

	faces := fd.Detect(img)
	for _, r := range faces {
		fmt.Fprintf(cmd.OutOrStdout(), "%d,%d,%d,%d\n", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	if len(faces) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no faces detected")
	}
	return nil
}
