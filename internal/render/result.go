package render

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailsort/internal/classifier"
)

// Variant selects the badge and card styling of a result
type Variant int

const (
	VariantUnproductive Variant = iota
	VariantProductive
)

func (v Variant) String() string {
	if v == VariantProductive {
		return "productive"
	}
	return "unproductive"
}

// ResultDisplay holds every text field shown in the result region
type ResultDisplay struct {
	Variant            Variant
	Badge              string
	Reason             string
	SuggestedResponse  string
	ClassificationTime string
	GenerationTime     string
	TotalTime          string
	Provider           string
	CharCount          string
	AnalyzedContent    string
}

// BuildResultDisplay converts an API result into display strings.
// providerLabel prefixes the model name ("Groq AI (llama3)").
func (f *Formatter) BuildResultDisplay(res *classifier.Result, providerLabel string) ResultDisplay {
	variant := VariantUnproductive
	if res.Productive() {
		variant = VariantProductive
	}
	return ResultDisplay{
		Variant:            variant,
		Badge:              res.Classification,
		Reason:             res.ClassificationReason,
		SuggestedResponse:  res.SuggestedResponse,
		ClassificationTime: FormatSeconds(res.ClassificationTime),
		GenerationTime:     FormatSeconds(res.GenerationTime),
		TotalTime:          FormatTotal(res.ClassificationTime, res.GenerationTime),
		Provider:           fmt.Sprintf("%s (%s)", providerLabel, res.ModelUsed),
		CharCount:          f.Count(res.CharCount),
		AnalyzedContent:    res.AnalyzedContent,
	}
}

// FileInfo describes an accepted file for the info block under the picker
type FileInfo struct {
	Name        string
	ContentType string
	Size        int64
	Pages       int // 0 when unknown or not a PDF
}

// Lines returns the info block rows ("Nome: ...", "Tipo: ...", "Tamanho: ...")
func (fi FileInfo) Lines() []string {
	lines := []string{
		"Nome: " + fi.Name,
		"Tipo: " + fi.ContentType,
		"Tamanho: " + FormatMiB(fi.Size),
	}
	if fi.Pages > 0 {
		lines = append(lines, fmt.Sprintf("Páginas: %d", fi.Pages))
	}
	return lines
}

// String joins the info block rows with newlines
func (fi FileInfo) String() string {
	return strings.Join(fi.Lines(), "\n")
}
