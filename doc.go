/*
Package seamcarve is a content aware image resize library. It shrinks the
source image both horizontally and vertically by repeatedly removing the
least important pixel paths (seams) instead of squeezing or cropping it.

The importance of every pixel is measured by a Sobel gradient energy map,
which can be biased by a protection mask or by the faces found with a pigo
cascade classifier. The cheapest seam is computed with dynamic programming
and removed, until the requested size is reached.

The package comes with a command line interface:

	$ seamcarve --help

The API can be used directly as well:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth:  300,
			NewHeight: 200,
		}

		in, _ := os.Open("input.jpg")
		out, _ := os.Create("output.png")

		if err := p.Process(in, out); err != nil {
			log.Fatalf("error rescaling image: %v", err)
		}
	}

The source image is never enlarged. A target larger than the source in
any dimension is rejected with ErrUnsupportedEnlargement.
*/
package seamcarve
