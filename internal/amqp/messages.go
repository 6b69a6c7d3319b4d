package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds published on the record_events queue.
const (
	EventDonationRecorded = "donation_recorded"
	EventIncomeRecorded   = "income_recorded"
	EventIncomeProcessed  = "income_processed"
)

// RecordEvent is a lightweight notification that a financial record changed.
// Consumers fetch the full record from storage by ID; the event carries just
// enough to be useful in an audit trail on its own.
type RecordEvent struct {
	MessageID string    `json:"message_id"`
	Kind      string    `json:"kind"`
	RecordID  int64     `json:"record_id"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordEvent creates an event with a fresh message ID.
func NewRecordEvent(kind string, recordID int64, amount, date string) *RecordEvent {
	return &RecordEvent{
		MessageID: uuid.NewString(),
		Kind:      kind,
		RecordID:  recordID,
		Amount:    amount,
		Date:      date,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON creates an event from JSON bytes
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var e RecordEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
