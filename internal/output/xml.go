package output

import (
	"encoding/xml"
	"time"
)

// XMLFormatter formats reports as generic XML.
type XMLFormatter struct{}

// xmlOutput is the XML structure for output.
type xmlOutput struct {
	XMLName     xml.Name   `xml:"report"`
	GeneratedAt string     `xml:"generated_at,attr"`
	SourceDir   string     `xml:"source_dir,attr"`
	TargetDir   string     `xml:"target_dir,attr"`
	Extension   string     `xml:"extension,attr,omitempty"`
	Summary     xmlSummary `xml:"summary"`
	Files       xmlFiles   `xml:"files"`
}

type xmlSummary struct {
	Total        int `xml:"total"`
	Converted    int `xml:"converted"`
	Failed       int `xml:"failed"`
	BytesRead    int `xml:"bytes_read"`
	BytesWritten int `xml:"bytes_written"`
}

type xmlFiles struct {
	Files []xmlFile `xml:"file"`
}

type xmlFile struct {
	Status       string `xml:"status,attr"`
	Source       string `xml:"source"`
	Target       string `xml:"target"`
	Error        string `xml:"error,omitempty"`
	BytesRead    int    `xml:"bytes_read,attr"`
	BytesWritten int    `xml:"bytes_written,attr"`
}

// Format implements Formatter.
func (*XMLFormatter) Format(report *Report) ([]byte, error) {
	output := xmlOutput{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		SourceDir:   report.SourceDir,
		TargetDir:   report.TargetDir,
		Extension:   report.Extension,
		Summary:     xmlSummary(report.Summary),
	}

	output.Files.Files = make([]xmlFile, 0, len(report.Results))
	for _, r := range report.Results {
		output.Files.Files = append(output.Files.Files, xmlFile{
			Status:       r.Status(),
			Source:       r.Source,
			Target:       r.Target,
			Error:        r.ErrorString(),
			BytesRead:    r.BytesRead,
			BytesWritten: r.BytesWritten,
		})
	}

	data, err := xml.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}
