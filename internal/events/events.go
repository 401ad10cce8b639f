// Package events carries the domain events emitted after a punch is
// persisted. Consumers invalidate caches; the outbox keeps an audit
// trail of every punch.
package events

// Timeclock event types.
const (
	EventEntryUpserted = "entry.upserted"
)

// EntryUpsertedPayload identifies the day record a punch just changed.
type EntryUpsertedPayload struct {
	EntryID  string `json:"entry_id"`
	Employee string `json:"employee"`
	Date     string `json:"date"`
	Action   string `json:"action,omitempty"`
	Period   string `json:"period,omitempty"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p EntryUpsertedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"entry_id": p.EntryID,
		"employee": p.Employee,
		"date":     p.Date,
	}
	if p.Action != "" {
		payload["action"] = p.Action
	}
	if p.Period != "" {
		payload["period"] = p.Period
	}
	return payload
}
