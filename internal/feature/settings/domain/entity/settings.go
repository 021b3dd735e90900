// Package entity defines the domain entities for the settings feature.
package entity

// Tab keys.
const (
	TabProfile       = "profile"
	TabNotifications = "notifications"
	TabIntegrations  = "integrations"
	TabSecurity      = "security"
)

// Toggle is one boolean switch on a settings tab. Keys are unique across all tabs.
type Toggle struct {
	Key         string
	Label       string
	Description string
	Enabled     bool
}

// Tab is one section of the settings screen.
type Tab struct {
	Key     string
	Title   string
	Toggles []Toggle
}

// DefaultTabs returns the settings catalog with its default values, in display order.
func DefaultTabs() []Tab {
	return []Tab{
		{Key: TabProfile, Title: "Profile", Toggles: []Toggle{
			{Key: "public_profile", Label: "Public profile", Description: "Show your name and company on shared pitches.", Enabled: true},
			{Key: "show_email", Label: "Show email", Description: "Display your email address to teammates.", Enabled: false},
		}},
		{Key: TabNotifications, Title: "Notifications", Toggles: []Toggle{
			{Key: "email_replies", Label: "Reply alerts", Description: "Email me when a lead replies.", Enabled: true},
			{Key: "meeting_booked", Label: "Meeting booked", Description: "Email me when a meeting is booked.", Enabled: true},
			{Key: "weekly_digest", Label: "Weekly digest", Description: "Send a weekly analytics summary.", Enabled: false},
		}},
		{Key: TabIntegrations, Title: "Integrations", Toggles: []Toggle{
			{Key: "crm_sync", Label: "CRM sync", Description: "Sync leads and activity with the connected CRM.", Enabled: false},
			{Key: "calendar_sync", Label: "Calendar sync", Description: "Read availability from the connected calendar.", Enabled: true},
			{Key: "slack_alerts", Label: "Slack alerts", Description: "Post reply alerts to Slack.", Enabled: false},
		}},
		{Key: TabSecurity, Title: "Security", Toggles: []Toggle{
			{Key: "two_factor", Label: "Two-factor authentication", Description: "Require a second factor at sign-in.", Enabled: false},
			{Key: "login_alerts", Label: "Login alerts", Description: "Email me on sign-in from a new device.", Enabled: true},
		}},
	}
}

// Apply returns a copy of tab with overrides applied to its toggles.
func (t Tab) Apply(overrides map[string]bool) Tab {
	out := Tab{Key: t.Key, Title: t.Title, Toggles: make([]Toggle, len(t.Toggles))}
	for i, tg := range t.Toggles {
		if v, ok := overrides[tg.Key]; ok {
			tg.Enabled = v
		}
		out.Toggles[i] = tg
	}
	return out
}

// FindToggle looks up a toggle by key across tabs and returns its default.
func FindToggle(tabs []Tab, key string) (Toggle, bool) {
	for _, t := range tabs {
		for _, tg := range t.Toggles {
			if tg.Key == key {
				return tg, true
			}
		}
	}
	return Toggle{}, false
}
