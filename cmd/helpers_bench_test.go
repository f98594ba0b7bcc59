package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nirzaf/mdx2txt/internal/converter"
)

func createBenchResults(n int) []converter.Result {
	results := make([]converter.Result, n)
	for i := range results {
		results[i] = converter.Result{
			Source:       fmt.Sprintf("post-%d.mdx", i),
			Target:       fmt.Sprintf("post-%d.txt", i),
			BytesRead:    2048,
			BytesWritten: 1024,
		}
		if i%10 == 0 {
			results[i].Err = errors.New("invalid UTF-8 at byte offset 0")
		}
	}
	return results
}

// BenchmarkSummaryLine measures summary formatting performance.
func BenchmarkSummaryLine(b *testing.B) {
	s := converter.Summarize(createBenchResults(1000))

	b.ResetTimer()
	for b.Loop() {
		summaryLine(s, 1000)
	}
}

// BenchmarkResultMessages measures per-file console line formatting.
func BenchmarkResultMessages(b *testing.B) {
	results := createBenchResults(1000)

	b.ResetTimer()
	for b.Loop() {
		for _, r := range results {
			_ = r.Message()
		}
	}
}

// BenchmarkMergePatterns measures include/exclude pattern merging.
func BenchmarkMergePatterns(b *testing.B) {
	fromConfig := []string{"draft-*", "*.wip.mdx", "tmp-*"}
	fromCLI := []string{"old-*", "archive-*"}

	b.ResetTimer()
	for b.Loop() {
		mergePatterns(fromConfig, fromCLI)
	}
}

// BenchmarkBuildConverterOptions measures option resolution.
func BenchmarkBuildConverterOptions(b *testing.B) {
	lc, err := LoadConfig("", true, nil)
	if err != nil {
		b.Fatal(err)
	}
	f := conversionFlags{Exclude: []string{"draft-*"}, MarkdownExts: []string{"table"}}

	b.ResetTimer()
	for b.Loop() {
		lc.BuildConverterOptions(f, nil)
	}
}
