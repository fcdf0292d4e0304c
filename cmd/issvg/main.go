package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kpango/glg"

	"github.com/gucio321/issvg/pkg/config"
	"github.com/gucio321/issvg/pkg/server"
)

// exit codes
const (
	exitSVG    = 0
	exitNotSVG = 1
	exitError  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

func run(args []string, stdin io.Reader) int {
	f, err := config.Parse("issvg", args)
	if err != nil {
		glg.Errorf("Invalid configuration: %v", err)
		return exitError
	}

	if f.Quiet {
		glg.Get().SetMode(glg.NONE)
	}

	if f.MakePreset() {
		out, err := f.Preset()
		if err != nil {
			glg.Errorf("Unable to generate preset: %v", err)
			return exitError
		}

		fmt.Print(string(out))
		glg.Infof("Presets generated")

		return exitSVG
	}

	classifier := f.Classifier()

	if f.Listen != "" {
		srv := server.New(classifier, f.MaxSize)
		if f.StringOnly {
			srv.StringOnly()
		}

		if f.Debug {
			srv.Debug()
		}

		if err := srv.ListenAndServe(f.Listen); err != nil {
			glg.Errorf("Cannot run server: %v", err)
		}

		return exitError
	}

	var data []byte
	if f.InputFilePath != "" {
		data, err = os.ReadFile(f.InputFilePath)
		if err != nil {
			glg.Errorf("Could not read data from %s: %v", f.InputFilePath, err)
			return exitError
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			glg.Errorf("Could not read data from standard input: %v", err)
			return exitError
		}
	}

	doc, err := classifier.Check(data)
	if err == nil && f.StringOnly && doc.Compressed {
		err = fmt.Errorf("string-only mode: gzip-compressed data")
	}

	if err != nil {
		if f.Debug {
			glg.Debugf("Rejected: %v", err)
		}

		glg.Warn("given data is not a valid SVG image")

		return exitNotSVG
	}

	if f.Debug {
		glg.Debugf("Root <%s> (%s), %d elements, depth %d, compressed: %v",
			doc.Root.Local, doc.Root.Space, doc.Elements, doc.Depth, doc.Compressed)
	}

	glg.Info("given data is a valid SVG image")

	return exitSVG
}
