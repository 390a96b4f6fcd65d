package seamcarve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/esimov/seamcarve/utils"
	"golang.org/x/term"
)

// PipeName is the file name that indicates stdin/stdout is being used.
const PipeName = "-"

// Ops holds the source and destination of a resize operation.
type Ops struct {
	Src, Dst string
	// Spinner shows the progress of the operation, it can be nil.
	Spinner *utils.Spinner
}

// Execute executes the image resizing process. The resize runs on a separate
// goroutine, so the operation can be abandoned by cancelling the context:
// in this case the partially written destination file is removed and the
// context error is returned. The carving itself cannot be interrupted,
// the caller is expected to exit soon after.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	src := op.Src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if f != nil {
			f.Close()
			defer os.Remove(f.Name())
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	if op.Dst != PipeName && !isValidExtension(filepath.Ext(op.Dst)) {
		return fmt.Errorf("%v file type not supported", filepath.Ext(op.Dst))
	}

	in, out, err := op.pathToFile(src, op.Dst)
	if err != nil {
		return err
	}
	defer closeFile(in)
	defer closeFile(out)

	if op.Spinner != nil {
		op.Spinner.Start()
	}

	now := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- p.Process(in, out)
	}()

	select {
	case <-ctx.Done():
		op.stopSpinner(false)
		removeFile(out)
		return ctx.Err()
	case err = <-done:
	}

	if err != nil {
		op.stopSpinner(false)
		// remove the generated image file in case of an error
		removeFile(out)
		return err
	}
	op.stopSpinner(true)

	if op.Dst != PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(op.Dst), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// stopSpinner stops the progress indicator with a success or a failure message.
func (op *Ops) stopSpinner(success bool) {
	if op.Spinner == nil {
		return
	}
	if success {
		op.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
		)
	} else {
		op.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("resizing image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	op.Spinner.Stop()
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if in == PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeFile(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			closeFile(src)
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

func closeFile(v any) {
	if f, ok := v.(*os.File); ok && f != os.Stdin && f != os.Stdout {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			log.Printf("could not close the opened file: %v", err)
		}
	}
}

func removeFile(v any) {
	if f, ok := v.(*os.File); ok && f != os.Stdout {
		os.Remove(f.Name())
	}
}
