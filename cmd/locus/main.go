// Command locus loads a document, searches its text, and optionally writes a
// PNG of the best match's page with the match highlighted.
package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/locusdoc/locus"
)

// options is interpreted by github.com/jessevdk/go-flags.
type options struct {
	Config    string  `short:"f" long:"config" description:"options YAML path"`
	Threshold float64 `short:"t" long:"threshold" default:"-1" description:"match threshold in [0,1], lower is stricter (default from config)"`
	Scale     float64 `short:"s" long:"scale" description:"render scale override"`
	Out       string  `short:"o" long:"out" description:"write the first match's page as PNG"`
	Verbose   bool    `short:"v" long:"verbose" description:"debug logging"`

	Args struct {
		File  string `positional-arg-name:"FILE" description:"document to load"`
		Query string `positional-arg-name:"QUERY" description:"text to search for"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "locus:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := locus.DefaultOptions()
	if opts.Config != "" {
		var err error
		cfg, err = locus.LoadOptions(opts.Config)
		if err != nil {
			return err
		}
	}
	if opts.Scale > 0 {
		cfg.Scale = opts.Scale
	}

	ctx := context.Background()
	session := locus.NewSession(cfg, logger)
	defer session.Close()

	if err := session.Load(ctx, opts.Args.File); err != nil {
		return err
	}

	results, err := session.Search(opts.Args.Query, opts.Threshold)
	if err != nil {
		return err
	}
	if results.Total == 0 {
		fmt.Println("no matches")
		return nil
	}

	for _, m := range results.Matches {
		kind := "fuzzy"
		if !m.Ranked {
			kind = "substring"
		}
		fmt.Printf("p%-4d %.3f %-9s %s\n", m.Line.PageNumber, m.Score, kind, m.Line.Text)
	}
	if results.Total > len(results.Matches) {
		fmt.Printf("showing %d of %d matches\n", len(results.Matches), results.Total)
	}

	if opts.Out == "" {
		return nil
	}
	surface, err := session.Show(ctx, results.Matches[0])
	if err != nil {
		return err
	}
	out, err := os.Create(opts.Out)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, surface.Snapshot()); err != nil {
		return err
	}
	logger.Info("wrote page image", "path", opts.Out, "page", surface.PageNumber())
	return nil
}
