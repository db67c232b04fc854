package amqp

import (
	"encoding/json"
	"time"

	"budgetbot/internal/core"
)

// RecordAppendedMessage announces that one row was appended to the ledger.
// It carries the full row: the mirror worker must not have to read the sheet
// back to replicate the append.
type RecordAppendedMessage struct {
	Period    string    `json:"period"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordAppendedMessage(period string, rec core.ExpenseRecord) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		Period:    period,
		Date:      rec.Date,
		Category:  rec.Category,
		Amount:    rec.Amount,
		Comment:   rec.Comment,
		Timestamp: time.Now(),
	}
}

// Record rebuilds the ledger row carried by the message.
func (m *RecordAppendedMessage) Record() core.ExpenseRecord {
	return core.ExpenseRecord{
		Date:     m.Date,
		Category: m.Category,
		Amount:   m.Amount,
		Comment:  m.Comment,
	}
}

func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
