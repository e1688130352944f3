package models

// Identifiable is implemented by every entity held in a slice collection.
type Identifiable interface {
	Identity() string
}

// Identity implements Identifiable.
func (o Organization) Identity() string { return o.ID }

// Identity implements Identifiable.
func (r Requirement) Identity() string { return r.ID }

// Identity implements Identifiable.
func (m Message) Identity() string { return m.ID }
