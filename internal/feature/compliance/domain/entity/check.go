// Package entity defines the domain entities for the compliance feature.
package entity

import "math"

// Check statuses.
const (
	StatusPassed  = "passed"
	StatusWarning = "warning"
	StatusFailed  = "failed"
)

// ValidStatus reports whether s is one of the known check statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPassed, StatusWarning, StatusFailed:
		return true
	}
	return false
}

// Check is one row of the compliance checklist.
type Check struct {
	Key         string
	Title       string
	Description string
	Category    string
	Status      string
	Required    bool
}

// Report is the checklist as shown on the compliance screen.
// Counts and Score always cover the whole catalog; Checks holds the filtered rows.
type Report struct {
	Checks  []Check
	Total   int
	Passed  int
	Warning int
	Failed  int
	Score   int
}

// NewReport builds a report over all checks and keeps only the rows matching status.
// An empty status keeps every row.
func NewReport(all []Check, status string) Report {
	r := Report{Checks: make([]Check, 0, len(all)), Total: len(all)}
	for _, c := range all {
		switch c.Status {
		case StatusPassed:
			r.Passed++
		case StatusWarning:
			r.Warning++
		case StatusFailed:
			r.Failed++
		}
		if status == "" || c.Status == status {
			r.Checks = append(r.Checks, c)
		}
	}
	if r.Total > 0 {
		r.Score = int(math.Round(float64(r.Passed) / float64(r.Total) * 100))
	}
	return r
}

// DefaultChecks returns the fixed compliance catalog.
func DefaultChecks() []Check {
	return []Check{
		{Key: "unsubscribe_link", Title: "Unsubscribe link", Description: "Every outbound email carries a one-click unsubscribe link.", Category: "can-spam", Status: StatusPassed, Required: true},
		{Key: "physical_address", Title: "Physical address", Description: "A valid postal address appears in the email footer.", Category: "can-spam", Status: StatusPassed, Required: true},
		{Key: "honest_subject", Title: "Subject lines", Description: "Subject lines reflect the content of the message.", Category: "can-spam", Status: StatusWarning, Required: true},
		{Key: "gdpr_consent", Title: "Lawful basis", Description: "EU contacts have a recorded lawful basis for processing.", Category: "gdpr", Status: StatusWarning, Required: true},
		{Key: "data_retention", Title: "Data retention", Description: "Lead data older than 24 months is purged.", Category: "gdpr", Status: StatusFailed, Required: false},
		{Key: "spf_record", Title: "SPF record", Description: "Sending domain publishes an SPF record.", Category: "deliverability", Status: StatusPassed, Required: true},
		{Key: "dkim_signature", Title: "DKIM signature", Description: "Outbound mail is DKIM signed.", Category: "deliverability", Status: StatusPassed, Required: true},
		{Key: "dmarc_policy", Title: "DMARC policy", Description: "Sending domain enforces a DMARC policy.", Category: "deliverability", Status: StatusFailed, Required: false},
	}
}
