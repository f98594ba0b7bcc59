package converter

import "fmt"

// Result is the outcome of converting one source file.
type Result struct {
	Source     string // Source file name
	SourcePath string // Full path of the source file
	Target     string // Target file name
	TargetPath string // Full path of the target file
	Text       string // Converted text (empty on failure)
	Err        error  // Non-nil if the conversion failed

	BytesRead    int
	BytesWritten int
}

// OK reports whether the file was converted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Status returns "converted" or "failed".
func (r Result) Status() string {
	if r.OK() {
		return "converted"
	}
	return "failed"
}

// ErrorString returns the error message, or "" on success.
func (r Result) ErrorString() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Message returns the console line reported for this file.
func (r Result) Message() string {
	if r.OK() {
		return fmt.Sprintf("Successfully converted %s to %s", r.Source, r.Target)
	}
	return fmt.Sprintf("Error converting %s: %v", r.Source, r.Err)
}

// Summary provides statistics about a batch.
type Summary struct {
	Total        int // Files attempted
	Converted    int // Files written
	Failed       int // Files that failed
	BytesRead    int // Source bytes read across all files
	BytesWritten int // Text bytes written across all files
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Summarize creates a summary from a slice of results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		s.BytesRead += r.BytesRead
		if r.OK() {
			s.Converted++
			s.BytesWritten += r.BytesWritten
		} else {
			s.Failed++
		}
	}
	return s
}

// FilterFailed returns only the failed results.
func FilterFailed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// FilterConverted returns only the successful results.
func FilterConverted(results []Result) []Result {
	var converted []Result
	for _, r := range results {
		if r.OK() {
			converted = append(converted, r)
		}
	}
	return converted
}
