// Package stats provides performance tracking for conversion runs.
// It captures timing for each phase, byte counts, memory usage,
// and throughput so slow batches can be understood.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Stats holds performance metrics for a conversion session.
type Stats struct {
	// Timing for each phase
	ScanStart    time.Time
	ScanEnd      time.Time
	ConvertStart time.Time
	ConvertEnd   time.Time

	// Counts
	FilesFound   int
	Converted    int
	Failed       int
	BytesRead    int
	BytesWritten int

	// Memory stats (captured at end)
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	NumGoroutine int
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartScan marks the beginning of the directory listing phase.
func (s *Stats) StartScan() {
	s.ScanStart = time.Now()
}

// EndScan marks the end of the directory listing phase.
func (s *Stats) EndScan(filesFound int) {
	s.ScanEnd = time.Now()
	s.FilesFound = filesFound
}

// StartConvert marks the beginning of the conversion phase.
func (s *Stats) StartConvert() {
	s.ConvertStart = time.Now()
}

// EndConvert marks the end of the conversion phase and captures memory stats.
func (s *Stats) EndConvert(converted, failed, bytesRead, bytesWritten int) {
	s.ConvertEnd = time.Now()
	s.Converted = converted
	s.Failed = failed
	s.BytesRead = bytesRead
	s.BytesWritten = bytesWritten
	s.captureMemoryStats()
}

// captureMemoryStats reads current memory statistics from runtime.
func (s *Stats) captureMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
	s.NumGoroutine = runtime.NumGoroutine()
}

// ScanDuration returns the time spent listing the source directory.
func (s *Stats) ScanDuration() time.Duration {
	if s.ScanEnd.IsZero() {
		return 0
	}
	return s.ScanEnd.Sub(s.ScanStart)
}

// ConvertDuration returns the time spent converting files.
func (s *Stats) ConvertDuration() time.Duration {
	if s.ConvertEnd.IsZero() {
		return 0
	}
	return s.ConvertEnd.Sub(s.ConvertStart)
}

// TotalDuration returns the total time from scan start to convert end.
func (s *Stats) TotalDuration() time.Duration {
	if s.ConvertEnd.IsZero() {
		return 0
	}
	return s.ConvertEnd.Sub(s.ScanStart)
}

// FilesPerSecond returns the conversion throughput.
func (s *Stats) FilesPerSecond() float64 {
	dur := s.ConvertDuration()
	attempted := s.Converted + s.Failed
	if dur == 0 || attempted == 0 {
		return 0
	}
	return float64(attempted) / dur.Seconds()
}

// AvgFileTime returns the average time per file.
func (s *Stats) AvgFileTime() time.Duration {
	attempted := s.Converted + s.Failed
	if attempted == 0 {
		return 0
	}
	return s.ConvertDuration() / time.Duration(attempted)
}

// Reduction returns the share of input bytes removed by conversion,
// as a percentage. It is 0 when nothing was read.
func (s *Stats) Reduction() float64 {
	if s.BytesRead == 0 {
		return 0
	}
	return (1 - float64(s.BytesWritten)/float64(s.BytesRead)) * 100
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats bytes for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted string representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()

	b.WriteString("\n=== Performance Statistics ===\n\n")

	b.WriteString("Timing:\n")
	fmt.Fprintf(&b, "  List files:    %8s", FormatDuration(s.ScanDuration()))
	if total > 0 {
		fmt.Fprintf(&b, "  (%4.1f%%)", float64(s.ScanDuration())/float64(total)*100)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  Convert:       %8s", FormatDuration(s.ConvertDuration()))
	if total > 0 {
		fmt.Fprintf(&b, "  (%4.1f%%)", float64(s.ConvertDuration())/float64(total)*100)
	}
	b.WriteString("\n")

	b.WriteString("  ─────────────────────────\n")
	fmt.Fprintf(&b, "  Total:         %8s\n", FormatDuration(total))

	b.WriteString("\nThroughput:\n")
	fmt.Fprintf(&b, "  Files found:       %5d\n", s.FilesFound)
	fmt.Fprintf(&b, "  Converted:         %5d\n", s.Converted)
	if s.Failed > 0 {
		fmt.Fprintf(&b, "  Failed:            %5d\n", s.Failed)
	}
	fmt.Fprintf(&b, "  Files/second:      %5.1f\n", s.FilesPerSecond())
	fmt.Fprintf(&b, "  Avg per file:    %7s\n", FormatDuration(s.AvgFileTime()))

	b.WriteString("\nContent:\n")
	fmt.Fprintf(&b, "  Read:          %8s\n", FormatBytes(uint64(s.BytesRead)))
	fmt.Fprintf(&b, "  Written:       %8s\n", FormatBytes(uint64(s.BytesWritten)))
	fmt.Fprintf(&b, "  Reduction:     %7.1f%%\n", s.Reduction())

	b.WriteString("\nMemory:\n")
	fmt.Fprintf(&b, "  Heap in use:   %8s\n", FormatBytes(s.HeapAlloc))
	fmt.Fprintf(&b, "  Total alloc:   %8s\n", FormatBytes(s.TotalAlloc))
	fmt.Fprintf(&b, "  GC cycles:     %8d\n", s.NumGC)
	fmt.Fprintf(&b, "  Goroutines:    %8d\n", s.NumGoroutine)

	return b.String()
}

// ToJSON returns a map suitable for JSON, YAML or TOML serialization.
func (s *Stats) ToJSON() map[string]any {
	return map[string]any{
		"timing": map[string]any{
			"scan_ms":    s.ScanDuration().Milliseconds(),
			"convert_ms": s.ConvertDuration().Milliseconds(),
			"total_ms":   s.TotalDuration().Milliseconds(),
		},
		"throughput": map[string]any{
			"files_found":      s.FilesFound,
			"converted":        s.Converted,
			"failed":           s.Failed,
			"files_per_second": s.FilesPerSecond(),
			"avg_file_us":      s.AvgFileTime().Microseconds(),
		},
		"content": map[string]any{
			"bytes_read":    s.BytesRead,
			"bytes_written": s.BytesWritten,
			"reduction_pct": s.Reduction(),
		},
		"memory": map[string]any{
			"heap_bytes":  s.HeapAlloc,
			"total_bytes": s.TotalAlloc,
			"gc_cycles":   s.NumGC,
			"goroutines":  s.NumGoroutine,
		},
	}
}
