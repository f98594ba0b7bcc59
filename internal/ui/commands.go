package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nirzaf/mdx2txt/internal/converter"
)

// ScanFilesCmd creates the target directory and lists the source files,
// in the same order a batch run does.
func ScanFilesCmd(conv *converter.Converter, sourceDir, targetDir string) tea.Cmd {
	return func() tea.Msg {
		if err := conv.PrepareTarget(targetDir); err != nil {
			return FilesFoundMsg{Err: err}
		}
		files, err := conv.Files(sourceDir)
		return FilesFoundMsg{Files: files, Err: err}
	}
}

// ConvertFileCmd converts one file. Cancellation is checked before starting,
// so a file that has begun converting is always finished.
func ConvertFileCmd(ctx context.Context, conv *converter.Converter, path, targetDir string) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Err(); err != nil {
			return ConversionCompleteMsg{Err: err}
		}
		return FileConvertedMsg{Result: conv.ConvertFile(path, targetDir)}
	}
}
