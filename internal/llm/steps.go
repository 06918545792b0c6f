// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/dataqa/pkg/types"
)

// Each prompted step declares its inputs in the template and exactly one
// output field the model must return inside a JSON object. The field name
// is part of the contract: the caller reads the output by that name, and a
// reply without it is a backend failure, not an empty result.

var keywordPromptTmpl = template.Must(template.New("keywords").Parse(`You extract search keywords for an open-data catalog.

Given a question about municipal open data, produce a short comma-separated
list of search keywords, most specific first.

Respond with a JSON object of the form {"keywords": "<comma-separated keywords>"}.
Do not include any text outside the JSON object.

Question: {{.Question}}
`))

var selectionPromptTmpl = template.Must(template.New("selection").Parse(`You choose the dataset best suited to answer a question about municipal open data.

Below is a numbered list of candidate datasets. Pick the single best match.

Respond with a JSON object of the form {"best_index": <integer index of the best dataset>}.
Do not include any text outside the JSON object.

Question: {{.Question}}

Candidate datasets:
{{range .Summaries}}{{.}}

{{end}}`))

var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`You answer questions about municipal open data using a sample of the chosen dataset.

The context below holds the resource name, its column names, a sample of its
rows, the total row count of the file, and the resource URL. Answer the
question from this context. When the sample alone cannot fully answer the
question, say so and describe what the full dataset contains.

Respond with a JSON object of the form {"answer": "<your answer>"}.
Do not include any text outside the JSON object.

Question: {{.Question}}

Context:
{{.Context}}
`))

// Steps bundles the three prompted steps over one backend.
type Steps struct {
	Backend Backend
}

// invoke renders the prompt, performs one model round trip, and returns the
// declared output field of the reply. The reply must be a JSON object
// containing that field.
func (s *Steps) invoke(ctx context.Context, tmpl *template.Template, data any, field string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}

	reply, err := s.Backend.Complete(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(reply), &obj); err != nil {
		return nil, fmt.Errorf("parsing %s reply as JSON: %w", tmpl.Name(), err)
	}

	out, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("%s reply missing %q field", tmpl.Name(), field)
	}
	return out, nil
}

// ExtractKeywords asks the model for a comma-separated keyword string.
func (s *Steps) ExtractKeywords(ctx context.Context, question string) (string, error) {
	out, err := s.invoke(ctx, keywordPromptTmpl, struct{ Question string }{question}, "keywords")
	if err != nil {
		return "", err
	}

	var keywords string
	if err := json.Unmarshal(out, &keywords); err != nil {
		return "", fmt.Errorf("keywords field is not a string: %w", err)
	}
	return keywords, nil
}

// SelectDataset asks the model to pick the best candidate by index. The
// returned index is not range checked here; the caller owns coercion.
func (s *Steps) SelectDataset(ctx context.Context, question string, summaries []string) (int, error) {
	data := struct {
		Question  string
		Summaries []string
	}{question, summaries}

	out, err := s.invoke(ctx, selectionPromptTmpl, data, "best_index")
	if err != nil {
		return 0, err
	}

	var index int
	if err := json.Unmarshal(out, &index); err != nil {
		return 0, fmt.Errorf("best_index field is not an integer: %w", err)
	}
	return index, nil
}

// SynthesizeAnswer asks the model for the final answer given the assembled
// context record.
func (s *Steps) SynthesizeAnswer(ctx context.Context, question string, answerCtx types.AnswerContext) (string, error) {
	ctxJSON, err := json.MarshalIndent(answerCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling answer context: %w", err)
	}

	data := struct {
		Question string
		Context  string
	}{question, string(ctxJSON)}

	out, err := s.invoke(ctx, synthesisPromptTmpl, data, "answer")
	if err != nil {
		return "", err
	}

	var answer string
	if err := json.Unmarshal(out, &answer); err != nil {
		return "", fmt.Errorf("answer field is not a string: %w", err)
	}
	return answer, nil
}
