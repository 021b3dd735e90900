package entity

// DefaultMetrics is the seeded analytics catalog.
func DefaultMetrics() []Metric {
	return []Metric{
		{Key: "leads_contacted", Label: "Leads Contacted", Category: "outreach", Unit: UnitCount, Value: 1284, Previous: 1102, IsActive: true, SortKey: 10},
		{Key: "emails_sent", Label: "Emails Sent", Category: "outreach", Unit: UnitCount, Value: 3420, Previous: 3650, IsActive: true, SortKey: 20},
		{Key: "open_rate", Label: "Open Rate", Category: "engagement", Unit: UnitPercent, Value: 48.2, Previous: 44.5, IsActive: true, SortKey: 30},
		{Key: "reply_rate", Label: "Reply Rate", Category: "engagement", Unit: UnitPercent, Value: 12.6, Previous: 12.6, IsActive: true, SortKey: 40},
		{Key: "meetings_booked", Label: "Meetings Booked", Category: "engagement", Unit: UnitCount, Value: 86, Previous: 71, IsActive: true, SortKey: 50},
		{Key: "pipeline_value", Label: "Pipeline Value", Category: "revenue", Unit: UnitUSD, Value: 412500, Previous: 389000, IsActive: true, SortKey: 60},
		{Key: "deals_closed", Label: "Deals Closed", Category: "revenue", Unit: UnitCount, Value: 14, Previous: 17, IsActive: true, SortKey: 70},
		{Key: "revenue_closed", Label: "Revenue Closed", Category: "revenue", Unit: UnitUSD, Value: 96800, Previous: 0, IsActive: true, SortKey: 80},
		{Key: "bounce_rate", Label: "Bounce Rate", Category: "outreach", Unit: UnitPercent, Value: 2.1, Previous: 2.4, IsActive: false, SortKey: 90},
	}
}
