package pdf2md

import (
	"github.com/tsawler/pdf2md/layout"
	"github.com/tsawler/pdf2md/markdown"
)

// ConvertOptions holds configuration for a conversion run.
type ConvertOptions struct {
	// Rendering policies
	removeHeaders        bool
	tableHeaderLabel     string
	skipEmptyTables      bool
	keepEmptyTableHeader bool
	demarcation          markdown.Demarcation

	// Image handling
	extractImages bool
	mediaDir      string

	// Pipeline tuning
	classifier layout.ClassifierConfig
	merge      layout.MergeConfig

	// Progress reporting (nil disables it)
	progress ProgressFunc
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		tableHeaderLabel: "###",
		extractImages:    true,
		classifier:       layout.DefaultClassifierConfig(),
		merge:            layout.DefaultMergeConfig(),
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}

// renderConfig translates the options into the markdown package's
// renderer configuration.
func (o ConvertOptions) renderConfig() markdown.Config {
	return markdown.Config{
		RemoveHeaders:        o.removeHeaders,
		TableHeaderLabel:     o.tableHeaderLabel,
		SkipEmptyTables:      o.skipEmptyTables,
		KeepEmptyTableHeader: o.keepEmptyTableHeader,
		PageDemarcation:      o.demarcation,
		MediaDir:             o.mediaDir,
	}
}

// mergeConfig translates the options into the layout package's merge
// configuration.
func (o ConvertOptions) mergeConfig() layout.MergeConfig {
	cfg := o.merge
	cfg.ExtractImages = o.extractImages
	return cfg
}
