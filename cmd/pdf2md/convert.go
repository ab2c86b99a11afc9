package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/pdf2md"
	"github.com/tsawler/pdf2md/markdown"
)

// conversionOptions carries the resolved command-line settings for one
// invocation.
type conversionOptions struct {
	outputDir            string
	noImages             bool
	demarcation          string
	removeHeaders        bool
	tableHeader          string
	skipEmptyTables      bool
	keepEmptyTableHeader bool
	showProgress         bool
}

// convertFile converts one input PDF, writing <base>.md (or
// <base>_page<N>.md in split mode) and a <base>_media/ directory for
// extracted images.
func convertFile(ctx context.Context, logger *slog.Logger, input string, opts conversionOptions) error {
	demarcation, err := markdown.ParseDemarcation(opts.demarcation)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outDir := opts.outputDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	conv := pdf2md.Open(input).
		PageDemarcation(demarcation).
		TableHeader(opts.tableHeader)

	if opts.removeHeaders {
		conv = conv.RemoveHeaders()
	}
	if opts.skipEmptyTables {
		conv = conv.SkipEmptyTables()
	}
	if opts.keepEmptyTableHeader {
		conv = conv.KeepEmptyTableHeader()
	}
	if opts.noImages {
		conv = conv.NoImages()
	} else {
		conv = conv.MediaDir(filepath.Join(outDir, base+"_media"))
	}
	if opts.showProgress {
		conv = conv.OnProgress(progressPrinter(input))
	}

	var warnings []pdf2md.Warning
	var outputs []string

	if demarcation == markdown.DemarcationSplit {
		pages, w, err := conv.MarkdownPages(ctx)
		if err != nil {
			return err
		}
		warnings = w
		for _, page := range pages {
			out := filepath.Join(outDir, fmt.Sprintf("%s_page%d.md", base, page.Page))
			if err := os.WriteFile(out, []byte(page.Markdown), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			outputs = append(outputs, out)
		}
	} else {
		md, w, err := conv.Markdown(ctx)
		if err != nil {
			return err
		}
		warnings = w
		out := filepath.Join(outDir, base+".md")
		if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		outputs = append(outputs, out)
	}

	for _, w := range warnings {
		logger.Warn("conversion warning", "file", input, "warning", w.String())
	}
	logger.Info("converted", "file", input, "outputs", len(outputs))
	return nil
}

// progressPrinter writes a single updating progress line to stderr.
func progressPrinter(input string) pdf2md.ProgressFunc {
	return func(ev pdf2md.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "\r%s: %3.0f%% %-40s", filepath.Base(input), ev.Percentage, ev.Message)
		if ev.Phase == pdf2md.PhaseDone {
			fmt.Fprintln(os.Stderr)
		}
	}
}
