package ui

import "github.com/nirzaf/mdx2txt/internal/converter"

// FilesFoundMsg is sent when the source directory has been listed.
type FilesFoundMsg struct {
	Err   error
	Files []string
}

// FileConvertedMsg is sent when a single file has been converted or failed.
type FileConvertedMsg struct {
	Result converter.Result
}

// ConversionCompleteMsg is sent when no more files will be converted.
// Err is set when the run was cancelled before all files were attempted.
type ConversionCompleteMsg struct {
	Err error
}
