package output

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/nirzaf/mdx2txt/internal/converter"
)

// JUnitFormatter formats reports as JUnit XML for CI/CD integration.
// Every attempted file is a test case; failed conversions are failures.
type JUnitFormatter struct{}

// junitTestSuites is the root element for JUnit XML.
type junitTestSuites struct {
	XMLName   xml.Name         `xml:"testsuites"`
	Name      string           `xml:"name,attr"`
	Tests     int              `xml:"tests,attr"`
	Failures  int              `xml:"failures,attr"`
	Errors    int              `xml:"errors,attr"`
	TestSuite []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// Format implements Formatter.
func (*JUnitFormatter) Format(report *Report) ([]byte, error) {
	suite := junitTestSuite{
		Name: report.SourceDir,
	}
	if suite.Name == "" {
		suite.Name = "mdx-files"
	}

	for _, r := range report.Results {
		suite.Tests++

		tc := junitTestCase{
			Name:      r.Source,
			ClassName: filepath.ToSlash(r.SourcePath),
		}
		if tc.ClassName == "" {
			tc.ClassName = r.Source
		}

		if !r.OK() {
			suite.Failures++
			tc.Failure = &junitFailure{
				Message: truncateForXML(r.ErrorString(), 200),
				Type:    "conversion",
				Content: buildFailureContent(r),
			}
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	suites := junitTestSuites{
		Name:      "mdx2txt",
		Tests:     suite.Tests,
		Failures:  suite.Failures,
		TestSuite: []junitTestSuite{suite},
	}

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}

// buildFailureContent creates detailed failure content.
func buildFailureContent(r converter.Result) string {
	content := fmt.Sprintf("Source: %s\n", r.SourcePath)
	if r.TargetPath != "" {
		content += fmt.Sprintf("Target: %s\n", r.TargetPath)
	}
	content += fmt.Sprintf("Error: %s\n", r.ErrorString())
	return content
}

// truncateForXML truncates a string and ensures it's safe for XML.
func truncateForXML(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
