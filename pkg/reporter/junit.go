// Package reporter provides functions for formatting and outputting run results.
// This file specifically renders a run as a JUnit XML report so CI systems
// can show the per-element breakdown: one testsuite per run, one testcase
// per element.
package reporter

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"uicheck/pkg/executor"
)

type jUnitDocument struct {
	XMLName    xml.Name         `xml:"testsuites"`
	TestSuites []jUnitTestSuite `xml:"testsuite"`
}

type jUnitTestSuite struct {
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Time       string          `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []jUnitProperty `xml:"properties>property"`
	TestCases  []jUnitTestCase `xml:"testcase"`
}

type jUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *jUnitFailure `xml:"failure,omitempty"`
}

type jUnitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

type jUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// WriteJUnit writes the run result to path as JUnit XML.
func WriteJUnit(result *executor.RunResult, path string) error {
	doc := buildJUnitDocument(result)

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JUnit report: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JUnit report '%s': %w", path, err)
	}
	return nil
}

func buildJUnitDocument(result *executor.RunResult) jUnitDocument {
	suite := jUnitTestSuite{
		Name:      "uicheck " + result.URL,
		Timestamp: result.StartTime.Format(time.RFC3339),
		Time:      jUnitDurationString(result.Duration),
		Properties: []jUnitProperty{
			{Name: "run_id", Value: result.RunID},
			{Name: "browser", Value: result.Browser},
			{Name: "url", Value: result.URL},
		},
	}

	if result.Validation != nil {
		for _, elem := range result.Validation.Elements {
			tc := jUnitTestCase{
				Name:      elem.Name,
				ClassName: elem.Selector,
				Time:      jUnitDurationString(elem.Duration),
			}
			if !elem.Found {
				tc.Failure = &jUnitFailure{Message: "element not found", Text: elem.Detail}
				suite.Failures++
			}
			suite.Tests++
			suite.TestCases = append(suite.TestCases, tc)
		}
	}

	// A critical error becomes its own failing case so the run never reports
	// an empty green suite.
	if result.Err != nil {
		suite.Tests++
		suite.Failures++
		suite.TestCases = append(suite.TestCases, jUnitTestCase{
			Name:      "run",
			ClassName: result.URL,
			Time:      jUnitDurationString(result.Duration),
			Failure:   &jUnitFailure{Message: "run aborted", Text: result.Err.Error()},
		})
	}

	return jUnitDocument{TestSuites: []jUnitTestSuite{suite}}
}

// jUnitDurationString renders seconds the way JUnit consumers expect.
func jUnitDurationString(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}
