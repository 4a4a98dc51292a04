package storage

import "time"

// Setting is one persisted key/value pair. Value holds a JSON document.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

const KeyReminder = "reminder"
