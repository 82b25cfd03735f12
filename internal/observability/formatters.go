// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/learning-recommender/internal/ranking"
	"github.com/jonathan/learning-recommender/internal/similarity"
	"github.com/jonathan/learning-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWeights outputs the resolved persona, weights and difficulty offset.
func (p *Printer) PrintWeights(ranked *types.RankedResources) {
	if ranked == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Persona:           %s\n", ranked.Persona))
	sb.WriteString(fmt.Sprintf("Difficulty offset: %.2f\n\n", ranked.DifficultyOffset))
	for _, signal := range ranking.Signals() {
		sb.WriteString(fmt.Sprintf("  %-18s %.3f\n", signal, ranked.Weights[signal]))
	}
	sb.WriteString(fmt.Sprintf("  %-18s %.3f", "total", ranking.Weights(ranked.Weights).Sum()))

	p.printBox("RESOLVED WEIGHTS", sb.String())
}

// PrintRankedResources outputs the top ranked resources with their strongest signals.
func (p *Printer) PrintRankedResources(ranked *types.RankedResources) {
	if ranked == nil || len(ranked.Ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total resources ranked: %d\n\n", len(ranked.Ranked)))

	count := min(len(ranked.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked.Ranked[i]
		title := r.Resource.Title
		if title == "" {
			title = r.ResourceID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.3f  Skill: %s\n", r.Score, r.Resource.SkillID))
		if r.Notes != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Notes))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more resources", len(ranked.Ranked)-maxItemsToShow))
	}

	p.printBox("TOP RANKED RESOURCES", sb.String())
}

// PrintSimilarSkills outputs the nearest neighbors of a skill.
func (p *Printer) PrintSimilarSkills(skillID string, similar []types.SimilarSkill) {
	var sb strings.Builder
	if len(similar) == 0 {
		sb.WriteString("No similar skills found")
	}
	for i, s := range similar {
		sb.WriteString(fmt.Sprintf("%2d. %-30s %.3f", i+1, s.SkillID, s.Similarity))
		if i < len(similar)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("SKILLS SIMILAR TO %s", skillID), sb.String())
}

// PrintMatrixStats outputs summary statistics of a similarity matrix.
func (p *Printer) PrintMatrixStats(stats similarity.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:              %d\n", stats.Size))
	sb.WriteString(fmt.Sprintf("Mean similarity:     %.3f\n", stats.MeanSimilarity))
	sb.WriteString(fmt.Sprintf("Co-occurrence edges: %d", stats.CooccurrenceEdges))

	p.printBox("SIMILARITY MATRIX", sb.String())
}

// PrintTargets outputs the improvement targets used for ranking.
func (p *Printer) PrintTargets(targets []types.ImprovementTarget) {
	if len(targets) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(targets), maxItemsToShow)
	for i := 0; i < count; i++ {
		t := targets[i]
		name := t.SkillName
		if name == "" {
			name = t.SkillID
		}
		sb.WriteString(fmt.Sprintf("  • %s: level %d → %d (gap %.2f)", name, t.CurrentLevel, t.TargetLevel, t.Gap))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(targets) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(targets)-maxItemsToShow))
	}

	p.printBox("IMPROVEMENT TARGETS", sb.String())
}
