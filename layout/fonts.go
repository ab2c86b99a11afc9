package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pdf2md/model"
)

// MaxHeadingLevel is the weakest heading level emitted; larger size
// clusters beyond the sixth all collapse to it.
const MaxHeadingLevel = 6

// ClassifierConfig holds tuning constants for font size classification.
// The values are heuristic defaults, not contractual.
type ClassifierConfig struct {
	// SizeTolerance is the bucket width for grouping near-identical font
	// sizes, in points.
	// Default: 0.5
	SizeTolerance float64

	// HeadingMarginRatio is the margin above the body size a bucket must
	// clear before it is considered a heading candidate. Absorbs rendering
	// jitter around the body size.
	// Default: 0.02 (2%)
	HeadingMarginRatio float64
}

// DefaultClassifierConfig returns sensible default configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		SizeTolerance:      0.5,
		HeadingMarginRatio: 0.02,
	}
}

// FontProfile maps bucketed font sizes to the total character count
// observed at that size. Derived once per document, read-only afterward.
type FontProfile map[float64]int

// Bucket snaps a font size to its tolerance bucket.
func Bucket(size, tolerance float64) float64 {
	if tolerance <= 0 {
		return size
	}
	return math.Round(size/tolerance) * tolerance
}

// HeaderLevelMap is the result of font size classification: an ordered
// mapping from font size (descending) to heading level 1..6. Sizes not
// present map to body text.
type HeaderLevelMap struct {
	levels        map[float64]int
	bodySize      float64
	tolerance     float64
	distinctSizes int
}

// BodySize returns the detected body text font size, 0 if the document
// had no text.
func (m *HeaderLevelMap) BodySize() float64 {
	if m == nil {
		return 0
	}
	return m.bodySize
}

// Level returns the heading level (1-6) for a font size, or 0 if the size
// maps to body text.
func (m *HeaderLevelMap) Level(size float64) int {
	if m == nil || len(m.levels) == 0 {
		return 0
	}
	return m.levels[Bucket(size, m.tolerance)]
}

// HasHeadings reports whether any font size maps to a heading level.
func (m *HeaderLevelMap) HasHeadings() bool {
	return m != nil && len(m.levels) > 0
}

// DistinctSizes returns the number of distinct (bucketed) font sizes
// observed during classification.
func (m *HeaderLevelMap) DistinctSizes() int {
	if m == nil {
		return 0
	}
	return m.distinctSizes
}

// HeadingSizes returns the classified heading sizes in descending order.
func (m *HeaderLevelMap) HeadingSizes() []float64 {
	if m == nil {
		return nil
	}
	sizes := make([]float64, 0, len(m.levels))
	for size := range m.levels {
		sizes = append(sizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	return sizes
}

// SizeClassifier determines the body font size of a document and a mapping
// from larger font sizes to heading levels.
type SizeClassifier struct {
	config ClassifierConfig
}

// NewSizeClassifier creates a classifier with default configuration.
func NewSizeClassifier() *SizeClassifier {
	return &SizeClassifier{config: DefaultClassifierConfig()}
}

// NewSizeClassifierWithConfig creates a classifier with custom configuration.
func NewSizeClassifierWithConfig(config ClassifierConfig) *SizeClassifier {
	return &SizeClassifier{config: config}
}

// Profile builds a font profile from text runs, weighting each bucketed
// size by character count rather than run count, so a long paragraph
// outweighs a handful of captions at another size.
func (c *SizeClassifier) Profile(runs []model.TextRun) FontProfile {
	profile := make(FontProfile)
	for _, run := range runs {
		chars := len([]rune(run.Text))
		if chars == 0 {
			continue
		}
		profile[Bucket(run.FontSize, c.config.SizeTolerance)] += chars
	}
	return profile
}

// ProfilePage builds a font profile for one page, excluding runs whose
// box falls inside a table region so cell text does not skew the body
// size vote.
func (c *SizeClassifier) ProfilePage(page *model.Page) FontProfile {
	tables := page.TableRegions()
	profile := make(FontProfile)
	for _, run := range page.TextRuns() {
		chars := len([]rune(run.Text))
		if chars == 0 {
			continue
		}
		if insideAnyTable(run.BBox, tables) {
			continue
		}
		profile[Bucket(run.FontSize, c.config.SizeTolerance)] += chars
	}
	return profile
}

// Classify builds the header level map for a document's text runs.
//
// The body size is the bucket with the greatest character weight, ties
// broken toward the smaller size. Buckets strictly greater than
// bodySize*(1+margin) become heading candidates; candidates are assigned
// levels 1, 2, 3, ... in descending size order, capped at level 6.
func (c *SizeClassifier) Classify(runs []model.TextRun) *HeaderLevelMap {
	profile := c.Profile(runs)
	return c.ClassifyProfile(profile)
}

// ClassifyProfile classifies a pre-built font profile.
func (c *SizeClassifier) ClassifyProfile(profile FontProfile) *HeaderLevelMap {
	m := &HeaderLevelMap{
		levels:        make(map[float64]int),
		tolerance:     c.config.SizeTolerance,
		distinctSizes: len(profile),
	}
	if len(profile) == 0 {
		return m
	}

	// Deterministic body pick: greatest weight, then smaller size.
	sizes := make([]float64, 0, len(profile))
	for size := range profile {
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)

	body := sizes[0]
	for _, size := range sizes[1:] {
		if profile[size] > profile[body] {
			body = size
		}
	}
	m.bodySize = body

	threshold := body * (1 + c.config.HeadingMarginRatio)
	var candidates []float64
	for _, size := range sizes {
		if size > threshold {
			candidates = append(candidates, size)
		}
	}
	if len(candidates) == 0 {
		return m
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(candidates)))
	for i, size := range candidates {
		level := i + 1
		if level > MaxHeadingLevel {
			level = MaxHeadingLevel
		}
		m.levels[size] = level
	}
	return m
}
