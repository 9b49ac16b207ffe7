package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

// Renderer writes check reports as JSON documents and human-readable
// terminal summaries.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer that prints summaries to stdout
func NewRenderer() *Renderer {
	return &Renderer{out: os.Stdout}
}

// RenderJSON writes the report to path as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints the human-readable verdict summary
func (r *Renderer) RenderSummary(report *model.Report) {
	w := r.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  VeriFact Report")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Claim:       %s\n", report.Claim)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Verdict:     %s\n", report.Verdict)
	fmt.Fprintf(w, "  Confidence:  %.1f%%\n", report.Confidence*100)
	fmt.Fprintf(w, "  Net score:   %+.3f\n", report.NetScore)
	if report.SearchTier != "" {
		fmt.Fprintf(w, "  Sources:     %d analyzed (via %s)\n", report.SourcesAnalyzed, report.SearchTier)
	} else {
		fmt.Fprintf(w, "  Sources:     %d analyzed\n", report.SourcesAnalyzed)
	}
	fmt.Fprintf(w, "  Elapsed:     %.2fs\n", report.Elapsed)

	if report.Explanation != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Reasoning:")
		for _, step := range report.Explanation.Steps {
			fmt.Fprintf(w, "    %d. %s: %s\n", step.Step, step.Title, step.Detail)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", report.Explanation.Threshold)
	}

	if len(report.Evidence) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Evidence:")
		for _, ev := range report.Evidence {
			fmt.Fprintf(w, "    %s %s (%s, similarity %.2f)\n",
				stanceGlyph(ev.Stance), ev.URL, ev.Stance, ev.Similarity)
			if ev.BestSentence != "" {
				fmt.Fprintf(w, "      %q\n", snippet(ev.BestSentence, 120))
			}
		}
	}

	fmt.Fprintln(w)
}

func stanceGlyph(s model.Stance) string {
	switch s {
	case model.StanceSupports:
		return "✓"
	case model.StanceRefutes:
		return "✗"
	default:
		return "•"
	}
}
