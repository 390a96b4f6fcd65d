package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/internal/config"
	"github.com/esimov/seamcarve/utils"
	"github.com/spf13/cobra"
)

var carveCmd = &cobra.Command{
	Use:   "carve",
	Short: "Resize an image to the requested size",
	Long: `Resize an image to the requested size, removing the least important
pixel paths. Use "-" as source or destination for stdin and stdout.
The source can be an image URL as well.`,
	RunE: runCarve,
}

func init() {
	def := config.Default()
	carveCmd.Flags().StringP("in", "i", seamcarve.PipeName, "Source image file, URL or - for stdin")
	carveCmd.Flags().StringP("out", "o", seamcarve.PipeName, "Destination image file or - for stdout")
	carveCmd.Flags().Float64("width", 0, "New width")
	carveCmd.Flags().Float64("height", 0, "New height")
	carveCmd.Flags().String("unit", "px", "Unit of the new size (px or cm)")
	carveCmd.Flags().Int("ppi", def.Carver.PPI, "Print resolution used with the cm unit")
	carveCmd.Flags().Bool("perc", false, "Reduce image by percentage")
	carveCmd.Flags().Bool("square", false, "Reduce image to square dimensions")
	carveCmd.Flags().String("mode", def.Carver.Mode, "Resize mode (seam, resize or crop)")
	carveCmd.Flags().String("filter", def.Carver.Filter, "Resampling filter (lanczos, catmullrom, linear, box, nearest)")
	carveCmd.Flags().Int("quality", def.Output.Quality, "Encoding quality of the lossy formats")
	carveCmd.Flags().String("bg", def.Output.Background, "Background color of the resize mode")
	carveCmd.Flags().Bool("debug", false, "Show the protected areas")
	addCarverFlags(carveCmd)
	addFaceFlags(carveCmd)
	rootCmd.AddCommand(carveCmd)
}

func runCarve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newProcessor(cmd, cfg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	src, _ := flags.GetString("in")
	dst, _ := flags.GetString("out")
	p.Percentage, _ = flags.GetBool("perc")
	p.Square, _ = flags.GetBool("square")
	p.Debug, _ = flags.GetBool("debug")

	if p.Background, err = utils.ParseHexColor(cfg.Output.Background); err != nil {
		return err
	}
	if p.NewWidth, p.NewHeight, err = targetSize(cmd, cfg); err != nil {
		return err
	}
	if p.NewWidth == 0 || p.NewHeight == 0 {
		return errors.New("please provide both the width and the height")
	}
	if p.Percentage && (p.NewWidth > 100 || p.NewHeight > 100) {
		return errors.New("the percentage must not exceed 100")
	}

	op := &seamcarve.Ops{Src: src, Dst: dst}
	if dst != seamcarve.PipeName {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("⇢ resizing image (be patient, it may take a while)...", utils.DefaultMessage),
		)
		op.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Execute(ctx, op); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("resizing interrupted")
		}
		return err
	}
	if stats := p.Stats(); p.Debug && stats.Iterations() > 0 {
		fmt.Fprintf(os.Stderr, "Removed seams: %d vertical, %d horizontal\n", stats.VerticalSeams, stats.HorizontalSeams)
	}
	return nil
}

// targetSize converts the requested size into pixels. Percentages are
// passed through unchanged.
func targetSize(cmd *cobra.Command, cfg *config.Config) (int, int, error) {
	flags := cmd.Flags()
	width, _ := flags.GetFloat64("width")
	height, _ := flags.GetFloat64("height")
	unit, _ := flags.GetString("unit")
	perc, _ := flags.GetBool("perc")

	if width < 0 || height < 0 {
		return 0, 0, seamcarve.ErrInvalidSize
	}
	switch unit {
	case "px":
		return int(math.Round(width)), int(math.Round(height)), nil
	case "cm":
		if perc {
			return 0, 0, errors.New("the cm unit cannot be combined with percentages")
		}
		return utils.CmToPixel(width, cfg.Carver.PPI), utils.CmToPixel(height, cfg.Carver.PPI), nil
	}
	return 0, 0, fmt.Errorf("unsupported unit: %q", unit)
}
