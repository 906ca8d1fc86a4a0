package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one batch of matrices.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one confusion matrix.
type JUnitTestCase struct {
	XMLName    xml.Name        `xml:"testcase"`
	Name       string          `xml:"name,attr"`
	Classname  string          `xml:"classname,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	Error      *JUnitError     `xml:"error,omitempty"`
	SystemOut  string          `xml:"system-out,omitempty"`
}

// JUnitError represents a matrix whose metrics could not be computed.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit maps each entry to a test case. Computation errors
// become <error> elements; diagnostics go to system-out since they do
// not invalidate the result.
func ConvertToJUnit(entries []Entry, opts Options) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:  opts.title(),
		Tests: len(entries),
	}

	if s := summaryOf(entries); s != nil && opts.Summary {
		for _, name := range metrics.MetricNames {
			m := s.Metrics[name]
			if m.Defined == 0 {
				continue
			}
			suite.Properties = append(suite.Properties, JUnitProperty{
				Name:  "mean." + name,
				Value: fmt.Sprintf("%.4f", m.Mean),
			})
		}
	}

	for _, e := range entries {
		tc := JUnitTestCase{Name: e.Name, Classname: opts.title()}
		if e.Err != nil {
			suite.Errors++
			tc.Error = &JUnitError{
				Message: e.Err.Error(),
				Type:    "ComputationError",
			}
			suite.TestCases = append(suite.TestCases, tc)
			continue
		}

		for _, name := range metrics.MetricNames {
			v, _ := e.Result.Value(name)
			tc.Properties = append(tc.Properties, JUnitProperty{Name: name, Value: formatRatio(v, 4)})
		}
		var out []string
		for _, d := range e.Result.Diagnostics {
			out = append(out, fmt.Sprintf("[WARN] %s: %s", d.Metric, d.Message))
		}
		tc.SystemOut = strings.Join(out, "\n")
		suite.TestCases = append(suite.TestCases, tc)
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func writeJUnit(w io.Writer, entries []Entry, opts Options) error {
	suites := ConvertToJUnit(entries, opts)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	_, err = w.Write(output)
	return err
}
