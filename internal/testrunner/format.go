package testrunner

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

// categoryOrder is the display order for grouped text output.
var categoryOrder = []types.TestCategory{
	types.CategoryFidelity,
	types.CategoryNegative,
	types.CategoryVoice,
	types.CategoryFramework,
	types.CategoryEdgeCase,
}

// FormatTestResults renders suite results as fixed-width text grouped by category.
func FormatTestResults(result *types.TestSuiteResult) string {
	var sb strings.Builder
	rule := strings.Repeat("═", 60)

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("PERSONA TEST SUITE: %s\n", result.PersonaName))
	sb.WriteString(fmt.Sprintf("Run %s\n", result.RunID))
	sb.WriteString(rule + "\n")

	grouped := make(map[types.TestCategory][]types.TestResult)
	for _, r := range result.Results {
		grouped[r.TestCase.Category] = append(grouped[r.TestCase.Category], r)
	}

	for _, category := range categoryOrder {
		results := grouped[category]
		if len(results) == 0 {
			continue
		}
		passed := 0
		for _, r := range results {
			if r.Passed {
				passed++
			}
		}
		sb.WriteString(fmt.Sprintf("\n%s (%d/%d)\n", strings.ToUpper(string(category)), passed, len(results)))
		for _, r := range results {
			mark := "✓"
			if !r.Passed {
				mark = "✗"
			}
			sb.WriteString(fmt.Sprintf("  %s %-16s %3d  %s\n", mark, r.TestCase.ID, r.ActualScore, r.TestCase.Description))
			if !r.Passed {
				sb.WriteString(fmt.Sprintf("      → %s\n", failureDetail(r)))
			}
		}
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("Total: %d  Passed: %d  Failed: %d  Pass rate: %.1f%%  (%s)\n",
		result.Total, result.Passed, result.Failed, result.PassRate*100, result.Duration))
	return sb.String()
}

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Time      string          `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	ID        string          `xml:"id,attr"`
	Cases     []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// GenerateJUnitReport renders suite results as a JUnit XML document.
func GenerateJUnitReport(result *types.TestSuiteResult) (string, error) {
	suiteName := "persona." + strings.ReplaceAll(strings.ToLower(result.PersonaName), " ", "_")
	suite := junitTestSuite{
		Name:      suiteName,
		Tests:     result.Total,
		Failures:  result.Failed,
		Time:      seconds(result.Duration.Seconds()),
		Timestamp: result.StartedAt.Format("2006-01-02T15:04:05"),
		ID:        result.RunID,
		Cases:     make([]junitTestCase, 0, len(result.Results)),
	}

	for _, r := range result.Results {
		tc := junitTestCase{
			Name:      r.TestCase.ID,
			Classname: suiteName + "." + string(r.TestCase.Category),
			Time:      seconds(r.Duration.Seconds()),
		}
		if !r.Passed {
			failureType := "ExpectationMismatch"
			if r.Error != "" {
				failureType = "EvaluationError"
			}
			tc.Failure = &junitFailure{
				Message: failureDetail(r),
				Type:    failureType,
				Body:    fmt.Sprintf("%s\nactual score: %d", r.TestCase.Description, r.ActualScore),
			}
		}
		suite.Cases = append(suite.Cases, tc)
	}

	doc := junitTestSuites{
		Name:     "persona-validator",
		Tests:    result.Total,
		Failures: result.Failed,
		Time:     suite.Time,
		Suites:   []junitTestSuite{suite},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &ReportError{Message: "failed to marshal JUnit report", Cause: err}
	}
	return xml.Header + string(data) + "\n", nil
}

// GenerateJSONReport renders suite results as indented JSON.
func GenerateJSONReport(result *types.TestSuiteResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", &ReportError{Message: "failed to marshal suite results", Cause: err}
	}
	return string(data), nil
}

func seconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}
