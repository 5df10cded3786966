package pdfform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const tableLineRatio = 0.6 // share of lines whose span count must sit near the block average

// textLine is one visual line of a page: the positioned spans that share a
// baseline, ordered left to right.
type textLine struct {
	y     float64
	spans []pdf.Text
}

// textBlock is a run of vertically adjacent lines.
type textBlock struct {
	lines []textLine
}

// PageTables detects tabular blocks on a page and renders each as a marker
// header followed by pipe-delimited rows. Block numbering is 1-based and
// follows the top-to-bottom order of the page.
func PageTables(page pdf.Page) []string {
	blocks := pageBlocks(page)

	var rendered []string
	for idx, block := range blocks {
		if len(block.lines) < 2 || !isTableStructure(block.lines) {
			continue
		}
		rendered = append(rendered, renderTable(idx+1, block))
	}
	return rendered
}

// pageBlocks groups the page's positioned text into lines by Y, then lines
// into blocks by vertical gap.
func pageBlocks(page pdf.Page) []textBlock {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	texts := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	// Page coordinates grow upward, so descending Y is top to bottom.
	sort.Slice(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var lines []textLine
	current := textLine{y: texts[0].Y}
	for _, t := range texts {
		if abs(t.Y-current.y) > rowTolerance {
			lines = append(lines, current)
			current = textLine{y: t.Y}
		}
		current.spans = append(current.spans, t)
	}
	lines = append(lines, current)

	for i := range lines {
		sort.Slice(lines[i].spans, func(a, b int) bool { return lines[i].spans[a].X < lines[i].spans[b].X })
	}

	var blocks []textBlock
	block := textBlock{}
	for i, line := range lines {
		if i > 0 && lines[i-1].y-line.y > blockGapThreshold && len(block.lines) > 0 {
			blocks = append(blocks, block)
			block = textBlock{}
		}
		block.lines = append(block.lines, line)
	}
	if len(block.lines) > 0 {
		blocks = append(blocks, block)
	}
	return blocks
}

// isTableStructure reports whether a block of lines looks tabular: at least
// 60% of the lines have a span count within one of the block average.
// Span order within a line never affects the outcome, only the counts do.
func isTableStructure(lines []textLine) bool {
	if len(lines) < 2 {
		return false
	}

	counts := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		counts[i] = len(line.spans)
		total += counts[i]
	}
	avg := float64(total) / float64(len(counts))

	similar := 0
	for _, c := range counts {
		if abs(float64(c)-avg) <= 1 {
			similar++
		}
	}
	return float64(similar)/float64(len(counts)) > tableLineRatio
}

// renderTable emits the table marker and one pipe-delimited row per line.
func renderTable(index int, block textBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- TABLE %d ---\n", index)
	for _, line := range block.lines {
		cells := make([]string, 0, len(line.spans))
		hasContent := false
		for _, span := range line.spans {
			cells = append(cells, span.S)
			if strings.TrimSpace(span.S) != "" {
				hasContent = true
			}
		}
		if hasContent {
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
