package reporter

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uicheck/pkg/executor"
)

func TestWriteJUnit(t *testing.T) {
	result := sampleResult()
	result.StartTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	result.Duration = 6.25

	path := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, WriteJUnit(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	var doc jUnitDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.Len(t, doc.TestSuites, 1)

	suite := doc.TestSuites[0]
	assert.Equal(t, "uicheck http://localhost:8081/", suite.Name)
	assert.Equal(t, 2, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, "6.250", suite.Time)

	require.Len(t, suite.TestCases, 2)
	assert.Equal(t, "Header", suite.TestCases[0].Name)
	assert.Nil(t, suite.TestCases[0].Failure)
	assert.Equal(t, "Footer", suite.TestCases[1].Name)
	require.NotNil(t, suite.TestCases[1].Failure)
	assert.Equal(t, "element not found", suite.TestCases[1].Failure.Message)
	assert.Equal(t, "not visible within 5s", suite.TestCases[1].Failure.Text)
}

func TestWriteJUnitCriticalError(t *testing.T) {
	result := &executor.RunResult{
		RunID:   "run-1",
		URL:     "http://down.example/",
		Browser: "webkit",
		Err:     errors.New("navigation timed out"),
	}

	path := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, WriteJUnit(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc jUnitDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.Len(t, doc.TestSuites, 1)

	suite := doc.TestSuites[0]
	assert.Equal(t, 1, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	require.Len(t, suite.TestCases, 1)
	require.NotNil(t, suite.TestCases[0].Failure)
	assert.Contains(t, suite.TestCases[0].Failure.Text, "navigation timed out")
}

func TestJUnitDurationString(t *testing.T) {
	assert.Equal(t, "0.000", jUnitDurationString(0))
	assert.Equal(t, "1.500", jUnitDurationString(1.5))
	assert.Equal(t, "0.042", jUnitDurationString(0.0421))
}
