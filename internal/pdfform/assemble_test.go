package pdfform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageMarker(t *testing.T) {
	assert.Equal(t, "\n=== PAGE 1 ===\n", pageMarker(1))
	assert.Equal(t, "\n=== PAGE 12 ===\n", pageMarker(12))
}

func TestSplitPages_RoundTrip(t *testing.T) {
	pages := []string{
		"First page content\nwith two lines",
		"Second page content",
		"Third page content",
	}

	var b strings.Builder
	for i, p := range pages {
		b.WriteString(pageMarker(i + 1))
		b.WriteString(p)
		b.WriteString("\n")
	}

	chunks := SplitPages(b.String())
	require.Len(t, chunks, len(pages))
	for i, p := range pages {
		assert.Equal(t, p, strings.TrimSpace(chunks[i]))
		assert.NotContains(t, chunks[i], "=== PAGE")
	}
}

func TestSplitPages_MarkerCountMatchesPageCount(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		var b strings.Builder
		for i := 1; i <= n; i++ {
			b.WriteString(pageMarker(i))
			fmt.Fprintf(&b, "page %d body\n", i)
		}
		assert.Len(t, SplitPages(b.String()), n)
	}
}

func TestSplitPages_NoMarkers(t *testing.T) {
	chunks := SplitPages("plain text without any markers")
	require.Len(t, chunks, 1)
	assert.Equal(t, "plain text without any markers", chunks[0])
}

func TestSplitPages_Empty(t *testing.T) {
	assert.Empty(t, SplitPages(""))
	assert.Empty(t, SplitPages("   \n  "))
}

func TestSplitPages_SentinelPageSurvives(t *testing.T) {
	content := pageMarker(1) + noTextSentinel + "\n" + pageMarker(2) + "real text\n"
	chunks := SplitPages(content)
	require.Len(t, chunks, 2)
	assert.Equal(t, noTextSentinel, strings.TrimSpace(chunks[0]))
}
