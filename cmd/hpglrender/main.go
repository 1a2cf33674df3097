// seehuhn.de/go/hpgl - an HP-GL/2 interpreter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command hpglrender renders an HP-GL/2 file to an image or a PDF file.
//
// Usage:
//
//	hpglrender [flags] input.plt output.png
//
// The page layout can be given in a TOML file:
//
//	log_level = "info"
//
//	[page]
//	width = 11
//	height = 8.5
//
//	[frame]
//	left = 0.25
//	top = 0.25
//	width = 10.5
//	height = 8
//
//	[output]
//	resolution = 300
//
// Flags override the values from the configuration file.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/pdfout"
	"seehuhn.de/go/hpgl/raster"
	"seehuhn.de/go/hpgl/transform"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	format := flag.String("format", "", "output format: png, tiff, bmp or pdf")
	dpi := flag.Float64("dpi", 0, "resolution of raster output, in pixels per inch")
	logLevel := flag.String("log", "", "log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] input output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *dpi != 0 {
		cfg.Output.Resolution = *dpi
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, cfg, flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, inName, outName string) error {
	if err := cfg.validate(outName); err != nil {
		return err
	}
	lvl, err := cfg.logLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()
	r := bufio.NewReader(in)

	logger.Info("rendering", "input", inName, "output", outName, "format", cfg.Output.Format)
	if cfg.Output.Format == "pdf" {
		return renderPDF(ctx, cfg, logger, r, outName)
	}
	img, err := renderImage(ctx, cfg, logger, r)
	if err != nil {
		return err
	}
	return writeImage(img, cfg.Output.Format, outName)
}

func renderImage(ctx context.Context, cfg *Config, logger *slog.Logger, r io.Reader) (image.Image, error) {
	res := cfg.Output.Resolution
	w := int(cfg.Page.Width*res + 0.5)
	h := int(cfg.Page.Height*res + 0.5)
	canvas := raster.NewCanvas(w, h)

	k := res / transform.PageUnitsPerInch
	ip, err := hpgl.New(gfx.NewDevice(canvas),
		hpgl.WithLogger(logger),
		hpgl.WithFrame(cfg.frame()),
		hpgl.WithPageCTM(matrix.Scale(k, k)))
	if err != nil {
		return nil, err
	}
	if err := ip.Exec(ctx, r); err != nil {
		return nil, err
	}
	return canvas.Image, nil
}

func renderPDF(ctx context.Context, cfg *Config, logger *slog.Logger, r io.Reader, outName string) error {
	const k = transform.PageUnitsPerInch
	page, err := pdfout.Create(outName, cfg.Page.Width*k, cfg.Page.Height*k)
	if err != nil {
		return err
	}

	ip, err := hpgl.New(gfx.NewDevice(page),
		hpgl.WithLogger(logger),
		hpgl.WithFrame(cfg.frame()))
	if err != nil {
		page.Close()
		return err
	}
	err = ip.Exec(ctx, r)
	return errors.Join(err, page.Close())
}

func writeImage(img image.Image, format, outName string) (err error) {
	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(out)
	switch format {
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}
