package models

// Snapshot is the full serialized state: one blob holding the profile and
// both record collections. Import replaces everything or nothing.
type Snapshot struct {
	Profile     *UserProfile        `json:"profile"`
	Sales       []InteractionRecord `json:"sales"`
	CounterLogs []CounterLog        `json:"counter_logs"`
}
