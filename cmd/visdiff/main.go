// seehuhn.de/go/visdiff - visual regression testing for 2D rendering
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

// Command visdiff manages reference images for visual regression
// testing and compares fresh renders against them.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/visdiff"
	"seehuhn.de/go/visdiff/corpus"
	"seehuhn.de/go/visdiff/engine"
	"seehuhn.de/go/visdiff/internal/config"
	"seehuhn.de/go/visdiff/internal/cssval"
	"seehuhn.de/go/visdiff/internal/srcfile"
	"seehuhn.de/go/visdiff/refstore"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"visdiff.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Regenerate struct {
		Engine       string `short:"e" help:"Rendering engine (soft, ghostscript)"`
		ReferenceDir string `short:"r" help:"Reference directory (overrides config)"`
		Force        bool   `help:"Replace references even if current output diverges from them"`
	} `cmd:"" help:"Regenerate all reference images (wholesale replacement)"`

	Compare struct {
		Engine              string `short:"e" help:"Rendering engine (soft, ghostscript)"`
		ReferenceDir        string `short:"r" help:"Reference directory (overrides config)"`
		DiffDir             string `short:"d" help:"Directory for diff images of failing pages (overrides config)"`
		AllowEngineMismatch bool   `help:"Compare even if the references were made by a different engine"`
	} `cmd:"" help:"Render all pages and compare against stored references"`

	Diff struct {
		Reference string `arg:"" help:"Reference image (path, URL, or data URI)"`
		Actual    string `arg:"" help:"Actual image (path, URL, or data URI)"`
		Output    string `short:"o" help:"Output file" default:"diff.png"`
		Over      string `help:"Color for over-coverage" default:"red"`
		Under     string `help:"Color for under-coverage" default:"lime"`
	} `cmd:"" help:"Create a 3-panel diff image from two PNG files"`

	List struct{} `cmd:"" help:"List all corpus page names"`

	Matrix struct {
		List     struct{} `cmd:"" help:"List the environment matrix"`
		Validate struct{} `cmd:"" help:"Check the matrix and the current environment against it"`
	} `cmd:"" help:"Inspect the supported environment matrix"`

	History struct {
		Limit int  `short:"n" help:"Number of runs to show" default:"10"`
		Flaky bool `help:"Show per-page failure counts instead of runs"`
	} `cmd:"" help:"Show recorded comparison runs"`

	Export struct {
		Output string `short:"o" help:"Output directory" default:"testdata/pdf"`
		Margin string `help:"Margin around each page (CSS length, e.g. 5mm)" default:"0"`
	} `cmd:"" help:"Export all corpus pages as PDF files"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write an example configuration file"`

	Watch struct {
		Engine   string        `short:"e" help:"Rendering engine (soft, ghostscript)"`
		Debounce time.Duration `help:"Delay before re-running after a change" default:"2s"`
	} `cmd:"" help:"Re-run the comparison whenever the references change"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("visdiff"),
		kong.Description("Visual regression testing for 2D rendering."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fatal(err)
	}

	switch kctx.Command() {
	case "regenerate":
		err = runRegenerate(ctx, cfg)
	case "compare":
		err = runCompare(ctx, cfg)
	case "diff <reference> <actual>":
		err = runDiff()
	case "list":
		for _, name := range corpus.Names() {
			fmt.Println(name)
		}
	case "matrix list":
		err = runMatrixList(cfg)
	case "matrix validate":
		err = runMatrixValidate(cfg)
	case "history":
		err = runHistory(ctx, cfg)
	case "export":
		err = runExport(cfg)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "watch":
		err = runWatch(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}

func selectEngine(name string, cfg *config.Config) (engine.Engine, error) {
	if name == "" {
		name = cfg.Engine
	}
	return engine.New(name)
}

func runRegenerate(ctx context.Context, cfg *config.Config) error {
	eng, err := selectEngine(CLI.Regenerate.Engine, cfg)
	if err != nil {
		return err
	}
	dir := cfg.ReferenceDir
	if CLI.Regenerate.ReferenceDir != "" {
		dir = CLI.Regenerate.ReferenceDir
	}
	store := refstore.New(dir)
	pages := corpus.Pages()

	err = store.RegenerateGuarded(ctx, eng, pages, cfg.Criteria, CLI.Regenerate.Force)
	var diverged *refstore.DivergenceError
	if errors.As(err, &diverged) {
		for _, name := range diverged.Names {
			slog.Warn("diverging page", "name", name)
		}
		return fmt.Errorf("%v; inspect them with 'visdiff compare' or rerun with --force", err)
	}
	return err
}

func runCompare(ctx context.Context, cfg *config.Config) error {
	eng, err := selectEngine(CLI.Compare.Engine, cfg)
	if err != nil {
		return err
	}
	dir := cfg.ReferenceDir
	if CLI.Compare.ReferenceDir != "" {
		dir = CLI.Compare.ReferenceDir
	}
	diffDir := cfg.DiffDir
	if CLI.Compare.DiffDir != "" {
		diffDir = CLI.Compare.DiffDir
	}

	store := refstore.New(dir)
	if err := store.CheckEngine(eng, CLI.Compare.AllowEngineMismatch); err != nil {
		return fmt.Errorf("%w; rerun with --allow-engine-mismatch to override", err)
	}

	results, err := store.CompareAll(ctx, eng, corpus.Pages(), cfg.Criteria, diffDir)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Printf("ERROR %-30s %v\n", r.Name, r.Err)
		case len(r.Failures) > 0:
			fmt.Printf("FAIL  %-30s %v\n", r.Name, r.Failures)
		default:
			slog.Debug("pass", "name", r.Name)
		}
	}
	pass, fail := refstore.Summarize(results)
	fmt.Printf("%d passed, %d failed\n", pass, fail)

	if cfg.HistoryDB != "" {
		if err := recordRun(ctx, cfg, eng, results); err != nil {
			slog.Warn("cannot record run history", "error", err)
		}
	}

	if fail > 0 {
		os.Exit(1)
	}
	return nil
}

func runDiff() error {
	over, err := cssval.Color(CLI.Diff.Over)
	if err != nil {
		return err
	}
	under, err := cssval.Color(CLI.Diff.Under)
	if err != nil {
		return err
	}

	ref, err := loadSource(CLI.Diff.Reference)
	if err != nil {
		return err
	}
	got, err := loadSource(CLI.Diff.Actual)
	if err != nil {
		return err
	}

	img := visdiff.DiffImageColors(ref, got, over, under)
	if err := visdiff.WritePNG(CLI.Diff.Output, img); err != nil {
		return err
	}

	m, err := visdiff.Compare(ref, got)
	if err != nil {
		slog.Warn("no metrics", "error", err)
		return nil
	}
	fmt.Printf("identical %d/%d  p80=%d p95=%d p99=%d max=%d mean=%.2f\n",
		m.Identical, m.Total, m.P80, m.P95, m.P99, m.Max, m.Mean)
	return nil
}

func runMatrixList(cfg *config.Config) error {
	for _, env := range cfg.Matrix.Environments {
		rng := "any"
		if env.EngineMin != "" || env.EngineMax != "" {
			rng = fmt.Sprintf("%s <= v < %s", env.EngineMin, env.EngineMax)
		}
		fmt.Printf("%-10s go %-6s %-12s %s\n", env.Name, env.Go, env.Engine, rng)
	}
	for _, extra := range cfg.Matrix.Extras {
		fmt.Printf("extra: %s\n", extra)
	}
	return nil
}

func runMatrixValidate(cfg *config.Config) error {
	if err := cfg.Matrix.Validate(); err != nil {
		return err
	}
	env := cfg.Matrix.Current()
	if env == nil {
		return fmt.Errorf("current Go toolchain is not covered by the matrix")
	}
	fmt.Printf("current environment: %s\n", env.Name)

	if env.Engine == "ghostscript" {
		gs := engine.NewGhostscript("")
		if !gs.Available() {
			return fmt.Errorf("environment %s needs ghostscript, but gs is not installed", env.Name)
		}
		version := gs.Version()
		if !env.Accepts(version) {
			return fmt.Errorf("ghostscript %s does not satisfy environment %s (%s <= v < %s)",
				version, env.Name, env.EngineMin, env.EngineMax)
		}
		fmt.Printf("ghostscript %s ok\n", version)
	}
	return nil
}

func runExport(cfg *config.Config) error {
	margin, err := cssval.Size(CLI.Export.Margin)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(CLI.Export.Output, 0o755); err != nil {
		return err
	}

	pages := corpus.Pages()
	for _, name := range corpus.Names() {
		page := pages[name]
		if margin > 0 {
			page = withMargin(page, margin)
		}
		fname := fmt.Sprintf("%s/%s.pdf", CLI.Export.Output, name)
		if err := engine.WritePDF(page, fname); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		slog.Debug("exported", "name", name, "file", fname)
	}
	fmt.Printf("exported %d pages to %s\n", len(pages), CLI.Export.Output)
	return nil
}

// loadSource reads a PNG from a path, URL, or data URI and converts
// it to grayscale.
func loadSource(name string) (*image.Gray, error) {
	data, err := srcfile.Open(name)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return visdiff.ToGray(img), nil
}

// withMargin returns a copy of the page enlarged by the given margin
// on all sides, with the drawing shifted accordingly.
func withMargin(page corpus.Page, margin float64) corpus.Page {
	ctm := page.CTM
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	page.CTM = ctm.Translate(margin, margin)
	page.Width += int(2 * margin)
	page.Height += int(2 * margin)
	return page
}
