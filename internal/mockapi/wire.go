package mockapi

import (
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// firestoreTime is the admin SDK encoding of a timestamp. The mock emits it on purpose
// so clients exercise their timestamp normalization.
type firestoreTime struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

func newFirestoreTime(t time.Time) firestoreTime {
	return firestoreTime{Seconds: t.Unix(), Nanoseconds: int64(t.Nanosecond())}
}

type requirementJSON struct {
	ID              string        `json:"id"`
	NGOEmail        string        `json:"ngoEmail"`
	Item            string        `json:"item"`
	Quantity        string        `json:"quantity"`
	Description     string        `json:"description"`
	Status          models.Status `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	CreatedAt       firestoreTime `json:"createdAt"`
}

func toRequirementJSON(recs []*requirementRecord) []requirementJSON {
	out := make([]requirementJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, requirementJSON{
			ID:              r.ID,
			NGOEmail:        r.NGOEmail,
			Item:            r.Item,
			Quantity:        r.Quantity,
			Description:     r.Description,
			Status:          r.Status,
			RejectionReason: r.RejectionReason,
			CreatedAt:       newFirestoreTime(r.createdAt),
		})
	}
	return out
}

type messageJSON struct {
	ID        string        `json:"id"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Body      string        `json:"message"`
	CreatedAt firestoreTime `json:"createdAt"`
}

func toMessageJSON(recs []*messageRecord) []messageJSON {
	out := make([]messageJSON, 0, len(recs))
	for _, m := range recs {
		out = append(out, messageJSON{
			ID:        m.ID,
			From:      m.From,
			To:        m.To,
			Body:      m.Body,
			CreatedAt: newFirestoreTime(m.createdAt),
		})
	}
	return out
}
