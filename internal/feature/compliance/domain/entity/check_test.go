package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	checks := []Check{
		{Key: "a", Status: StatusPassed},
		{Key: "b", Status: StatusPassed},
		{Key: "c", Status: StatusWarning},
		{Key: "d", Status: StatusFailed},
	}

	tests := []struct {
		name         string
		status       string
		expectedKeys []string
	}{
		{name: "no filter keeps all rows", expectedKeys: []string{"a", "b", "c", "d"}},
		{name: "passed only", status: StatusPassed, expectedKeys: []string{"a", "b"}},
		{name: "failed only", status: StatusFailed, expectedKeys: []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(checks, tt.status)

			keys := make([]string, 0, len(r.Checks))
			for _, c := range r.Checks {
				keys = append(keys, c.Key)
			}
			assert.Equal(t, tt.expectedKeys, keys)

			// 集計はフィルタに関係なくカタログ全体
			assert.Equal(t, 4, r.Total)
			assert.Equal(t, 2, r.Passed)
			assert.Equal(t, 1, r.Warning)
			assert.Equal(t, 1, r.Failed)
			assert.Equal(t, 50, r.Score)
		})
	}
}

func TestNewReport_ScoreRounding(t *testing.T) {
	checks := []Check{{Status: StatusPassed}, {Status: StatusPassed}, {Status: StatusFailed}}
	assert.Equal(t, 67, NewReport(checks, "").Score)
	assert.Equal(t, 0, NewReport(nil, "").Score)
}

func TestDefaultChecks(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range DefaultChecks() {
		assert.False(t, seen[c.Key], "duplicate key %s", c.Key)
		seen[c.Key] = true
		assert.True(t, ValidStatus(c.Status), "invalid status for %s", c.Key)
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, 50, NewReport(DefaultChecks(), "").Score)
}

func TestScan_Progress(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Scan{StartedAt: start, Duration: 10 * time.Second}

	tests := []struct {
		name          string
		at            time.Time
		expected      int
		expectedState string
	}{
		{name: "before start", at: start.Add(-time.Second), expected: 0, expectedState: ScanRunning},
		{name: "at start", at: start, expected: 0, expectedState: ScanRunning},
		{name: "halfway", at: start.Add(5 * time.Second), expected: 50, expectedState: ScanRunning},
		{name: "exactly done", at: start.Add(10 * time.Second), expected: 100, expectedState: ScanCompleted},
		{name: "long after", at: start.Add(time.Hour), expected: 100, expectedState: ScanCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Progress(tt.at))
			assert.Equal(t, tt.expectedState, s.State(tt.at))
		})
	}
}

func TestScan_ZeroDurationIsComplete(t *testing.T) {
	s := Scan{StartedAt: time.Now()}
	assert.Equal(t, 100, s.Progress(s.StartedAt))
	assert.Equal(t, ScanCompleted, s.State(s.StartedAt))
}
