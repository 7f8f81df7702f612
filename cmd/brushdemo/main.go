// Command brushdemo replays a YAML stroke script through a brush session
// and writes the resulting canvas to a PNG file.
//
// Usage:
//
//	brushdemo -script stroke.yaml -out canvas.png [-brush tip.gbr] [-presets presets.toml -preset name] [-v]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/brushimage"
)

func main() {
	var (
		script  = flag.String("script", "", "YAML stroke script (required)")
		output  = flag.String("out", "canvas.png", "output PNG file")
		tips    = flag.String("brush", "", "comma-separated brush image files")
		presets = flag.String("presets", "", "TOML preset file")
		preset  = flag.String("preset", "", "preset to start from")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	brush.SetLogger(log)

	if *script == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config{
		script:  *script,
		output:  *output,
		presets: *presets,
		preset:  *preset,
	}
	if *tips != "" {
		cfg.brushes = strings.Split(*tips, ",")
	}
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("brushdemo failed", "err", err)
		os.Exit(1)
	}
}

type config struct {
	script  string
	output  string
	brushes []string
	presets string
	preset  string
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	sc, err := LoadScript(cfg.script)
	if err != nil {
		return err
	}

	base := brush.DefaultSettings()
	if cfg.preset != "" {
		if cfg.presets == "" {
			return errors.New("brushdemo: -preset needs -presets")
		}
		book, err := brush.LoadPresets(cfg.presets)
		if err != nil {
			return err
		}
		if base, err = book.Get(cfg.preset); err != nil {
			return err
		}
	}

	coll := brushimage.NewCollection()
	if len(cfg.brushes) > 0 {
		res, err := (&brushimage.Importer{Collection: coll, Logger: log}).Import(ctx, cfg.brushes, nil)
		if err != nil {
			return err
		}
		// The first imported tip is the default when nothing names one.
		if base.Brush == "" && len(res.Added) > 0 {
			base.Brush = res.Added[0]
		}
	}

	settings, err := sc.ApplySettings(base)
	if err != nil {
		return err
	}

	view, err := sc.ApplyView()
	if err != nil {
		return err
	}

	paper := brush.NewCanvas(sc.Canvas.Width, sc.Canvas.Height)
	paper.Clear(sc.Canvas.Background)
	opts := []brush.Option{
		brush.WithSettings(settings),
		brush.WithBrushSource(coll),
		brush.WithView(view),
		brush.WithLogger(log),
	}
	s, err := brush.NewSession(paper, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warn("closing session", "err", cerr)
		}
	}()

	if err := sc.Run(s, log); err != nil {
		return err
	}

	if err := s.Canvas().SavePNG(cfg.output); err != nil {
		return fmt.Errorf("brushdemo: save %s: %w", filepath.Base(cfg.output), err)
	}
	log.Info("canvas saved", "path", cfg.output, "events", len(sc.Events))
	return nil
}
