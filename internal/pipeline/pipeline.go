// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the question-answering flow: keyword
// extraction, catalog search, dataset selection, resource sampling, and
// answer synthesis.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/dataqa/internal/catalog"
	"github.com/pdiddy/dataqa/internal/metrics"
	"github.com/pdiddy/dataqa/pkg/types"
)

const (
	// maxCandidates caps how many datasets are offered to the selection step.
	maxCandidates = 5

	// maxNotesChars caps the description length in a dataset summary.
	maxNotesChars = 200
)

// Catalog is the subset of the catalog client the pipeline needs.
type Catalog interface {
	SearchPackages(ctx context.Context, query string) (types.PackageSearchResult, error)
	ShowPackage(ctx context.Context, id string) (types.Package, error)
}

// Sampler produces a bounded preview of a CSV resource.
type Sampler interface {
	Sample(ctx context.Context, url string) (types.Sample, error)
}

// Steps are the three prompted model steps the pipeline invokes.
type Steps interface {
	ExtractKeywords(ctx context.Context, question string) (string, error)
	SelectDataset(ctx context.Context, question string, summaries []string) (int, error)
	SynthesizeAnswer(ctx context.Context, question string, answerCtx types.AnswerContext) (string, error)
}

// Pipeline answers questions about catalog datasets. Collaborators are
// injected so tests can substitute mocks.
type Pipeline struct {
	Catalog Catalog
	Sampler Sampler
	Steps   Steps

	// Log receives step-by-step progress lines.
	Log io.Writer
}

// New builds a pipeline. A nil log writer discards progress output.
func New(cat Catalog, sampler Sampler, steps Steps, log io.Writer) *Pipeline {
	if log == nil {
		log = io.Discard
	}
	return &Pipeline{Catalog: cat, Sampler: sampler, Steps: steps, Log: log}
}

// Answer runs question through the pipeline and always returns a
// human-readable answer. It is the terminal error handler: any failure in
// any step is rendered as text, never returned as an error.
func (p *Pipeline) Answer(ctx context.Context, question string) string {
	answer, outcome, err := p.run(ctx, question)
	if err != nil {
		fmt.Fprintf(p.Log, "[pipeline] failed: %v\n", err)
		metrics.RecordQuestion(metrics.OutcomeError)
		return fmt.Sprintf("An error occurred while processing your question: %s", err)
	}
	metrics.RecordQuestion(outcome)
	return answer
}

func (p *Pipeline) run(ctx context.Context, question string) (answer, outcome string, err error) {
	fmt.Fprintf(p.Log, "[pipeline] question: %s\n", question)

	keywords, err := p.Steps.ExtractKeywords(ctx, question)
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(p.Log, "[pipeline] extracted keywords: %s\n", keywords)

	query := SearchQuery(keywords)
	fmt.Fprintf(p.Log, "[pipeline] search query: %s\n", query)

	searchResult, err := p.Catalog.SearchPackages(ctx, query)
	if err != nil {
		return "", "", err
	}

	candidates := filterCandidates(searchResult.Results)
	if len(candidates) == 0 {
		fmt.Fprintln(p.Log, "[pipeline] no datasets with CSV resources found")
		return "No datasets with CSV resources found.", metrics.OutcomeNoDatasets, nil
	}

	summaries := Summarize(candidates)
	fmt.Fprintf(p.Log, "[pipeline] prepared %d dataset summaries\n", len(summaries))

	index, err := p.Steps.SelectDataset(ctx, question, summaries)
	if err != nil {
		return "", "", err
	}
	if index < 0 || index >= len(candidates) {
		fmt.Fprintf(p.Log, "[pipeline] invalid index %d, defaulting to 0\n", index)
		index = 0
	}
	selected := candidates[index]
	fmt.Fprintf(p.Log, "[pipeline] selected dataset %d: %s\n", index, selected.ID)

	pkg, err := p.Catalog.ShowPackage(ctx, selected.ID)
	if err != nil {
		return "", "", err
	}

	resource, ok := catalog.FirstCSVResource(pkg.Resources)
	if !ok {
		name := selected.Title
		if name == "" {
			name = selected.ID
		}
		fmt.Fprintf(p.Log, "[pipeline] no CSV resource in package %s\n", selected.ID)
		return fmt.Sprintf("No suitable CSV data file found in package '%s'.", name), metrics.OutcomeNoResource, nil
	}

	fmt.Fprintf(p.Log, "[pipeline] sampling resource: %s\n", resource.URL)
	sample, err := p.Sampler.Sample(ctx, resource.URL)
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(p.Log, "[pipeline] sampled %d rows, total rows: %d\n", len(sample.Rows), sample.TotalRows)

	answerCtx := types.AnswerContext{
		ResourceName: resource.Name,
		Columns:      sample.Columns,
		SampleRows:   sample.Rows,
		TotalRows:    sample.TotalRows,
		ResourceURL:  resource.URL,
	}

	answer, err = p.Steps.SynthesizeAnswer(ctx, question, answerCtx)
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(p.Log, "[pipeline] answer: %s\n", answer)
	return answer, metrics.OutcomeAnswered, nil
}

// SearchQuery derives the catalog query from the model's keyword output:
// the first trimmed non-empty comma-separated token, or the raw output
// unchanged when no token survives.
func SearchQuery(keywords string) string {
	for _, token := range strings.Split(keywords, ",") {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			return trimmed
		}
	}
	return keywords
}

// filterCandidates keeps the first maxCandidates datasets that carry a CSV
// resource, preserving catalog search order.
func filterCandidates(packages []types.Package) []types.Package {
	var candidates []types.Package
	for _, pkg := range packages {
		if !catalog.HasCSVResource(pkg) {
			continue
		}
		candidates = append(candidates, pkg)
		if len(candidates) == maxCandidates {
			break
		}
	}
	return candidates
}

// Summarize renders one selection line per candidate, tagged with its
// index in the candidate list.
func Summarize(candidates []types.Package) []string {
	summaries := make([]string, len(candidates))
	for i, pkg := range candidates {
		formats := make([]string, len(pkg.Resources))
		for j, r := range pkg.Resources {
			formats[j] = r.Format
		}
		summaries[i] = fmt.Sprintf("[%d] Title: %s\nDescription: %s\nFormats: %s",
			i, pkg.Title, truncate(pkg.Notes, maxNotesChars), strings.Join(formats, ", "))
	}
	return summaries
}

// truncate cuts s to at most max characters.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
