package report

import (
	"strconv"

	"github.com/frontikai/stewardapp/internal/core"
)

// ExportRow is a donation flattened for CSV/JSON export: plain key/value
// fields only, no nesting, so a naive serializer can walk it. Field names
// are a stable contract with the export collaborator.
type ExportRow struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Notes     string `json:"notes"`
}

// ExportHeader lists the row field names in column order.
var ExportHeader = []string{"id", "date", "amount", "type", "recipient", "notes"}

// Columns renders the row's values in ExportHeader order.
func (r ExportRow) Columns() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Date,
		r.Amount,
		r.Type,
		r.Recipient,
		r.Notes,
	}
}

// ExportRows flattens donations for export, resolving recipient names the
// same way the category aggregation does.
func ExportRows(donations []core.Donation, recipients []core.Recipient) []ExportRow {
	names := make(map[int64]string, len(recipients))
	for _, r := range recipients {
		names[r.ID] = r.Name
	}

	rows := make([]ExportRow, 0, len(donations))
	for _, d := range donations {
		name, ok := names[d.RecipientID]
		if !ok {
			name = UnknownRecipient
		}
		rows = append(rows, ExportRow{
			ID:        d.ID,
			Date:      d.Date.ISO(),
			Amount:    d.Amount.StringFixed(2),
			Type:      string(d.Type),
			Recipient: name,
			Notes:     d.Notes,
		})
	}
	return rows
}
