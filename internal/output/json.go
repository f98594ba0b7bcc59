package output

import (
	"encoding/json"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// Format implements Formatter.
func (*JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(newDocument(report), "", "  ")
}
