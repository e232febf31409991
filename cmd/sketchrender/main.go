package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gosketch "github.com/VantageDataChat/GoSketch"
)

func main() {
	in := flag.String("in", "drawing.json", "input drawing records (JSON array)")
	out := flag.String("out", "drawing.png", "output file (.png, .jpg or .svg)")
	width := flag.Int("width", 960, "canvas width in pixels")
	height := flag.Int("height", 720, "canvas height in pixels")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if *verbose {
		gosketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	elements, err := gosketch.DecodeRecords(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		os.Exit(1)
	}

	for i, e := range elements {
		if err := e.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "element %d: %v\n", i, err)
			os.Exit(1)
		}
	}

	switch {
	case strings.HasSuffix(*out, ".svg"):
		doc := gosketch.SVGDocument(*width, *height, nil, elements...)
		if err := os.WriteFile(*out, []byte(doc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
	default:
		opts := gosketch.DefaultRenderOptions()
		opts.Width = *width
		opts.Height = *height
		if strings.HasSuffix(*out, ".jpg") || strings.HasSuffix(*out, ".jpeg") {
			opts.Format = gosketch.ImageFormatJPEG
		}
		r := gosketch.NewRenderer(opts)
		r.Render(elements...)
		if err := r.SaveImage(*out); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendered %d elements to %s\n", len(elements), *out)
}
