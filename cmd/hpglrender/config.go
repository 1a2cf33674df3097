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

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/transform"
)

// Config holds the settings of a rendering run.  Lengths are in inches.
type Config struct {
	Page   PageConfig   `toml:"page"`
	Frame  FrameConfig  `toml:"frame"`
	Output OutputConfig `toml:"output"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// PageConfig gives the size of the output page.
type PageConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// FrameConfig places the picture frame on the page.  A zero width or
// height selects the default frame for a letter page.
type FrameConfig struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// PlotWidth and PlotHeight give the size the plot was designed for.
	// Zero values disable plot-size scaling.
	PlotWidth  float64 `toml:"plot_width"`
	PlotHeight float64 `toml:"plot_height"`
}

// OutputConfig selects the output file format.
type OutputConfig struct {
	// Format is one of "png", "tiff", "bmp" or "pdf".  If empty, the
	// format is derived from the file name.
	Format string `toml:"format"`

	// Resolution is in pixels per inch.  It is ignored for PDF output.
	Resolution float64 `toml:"resolution"`
}

func defaultConfig() *Config {
	return &Config{
		Page: PageConfig{
			Width:  8.5,
			Height: 11,
		},
		Output: OutputConfig{
			Resolution: 150,
		},
		LogLevel: "warn",
	}
}

// loadConfig reads a TOML file on top of the default settings.  Keys
// which are not recognized are reported as an error.
func loadConfig(fname string) (*Config, error) {
	cfg := defaultConfig()
	if fname == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(fname, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", fname, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %q: unknown key %q", fname, undecoded[0].String())
	}
	return cfg, nil
}

// validate checks the settings and fills in the output format.
func (c *Config) validate(outName string) error {
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", c.Page.Width, c.Page.Height)
	}
	if c.Output.Resolution <= 0 {
		return fmt.Errorf("invalid resolution %g", c.Output.Resolution)
	}
	if c.Frame.Width < 0 || c.Frame.Height < 0 {
		return fmt.Errorf("invalid picture frame size %gx%g", c.Frame.Width, c.Frame.Height)
	}

	if c.Output.Format == "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outName)), ".")
		if ext == "tif" {
			ext = "tiff"
		}
		c.Output.Format = ext
	}
	switch c.Output.Format {
	case "png", "tiff", "bmp", "pdf":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	return nil
}

// frame returns the picture frame in page units.
func (c *Config) frame() transform.Frame {
	const k = transform.PageUnitsPerInch
	if c.Frame.Width == 0 || c.Frame.Height == 0 {
		f := transform.LetterFrame()
		f.PlotWidth = c.Frame.PlotWidth * k
		f.PlotHeight = c.Frame.PlotHeight * k
		return f
	}
	return transform.Frame{
		Anchor:     vec.Vec2{X: c.Frame.Left * k, Y: c.Frame.Top * k},
		Width:      c.Frame.Width * k,
		Height:     c.Frame.Height * k,
		PlotWidth:  c.Frame.PlotWidth * k,
		PlotHeight: c.Frame.PlotHeight * k,
	}
}

func (c *Config) logLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
