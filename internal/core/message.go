package core

import "time"

// Identity is a snapshot of who a participant was at a point in time.
type Identity struct {
	ID   string
	Name string
}

// Message is an immutable chat message owned by one channel.
type Message struct {
	ID        string
	Author    Identity
	Body      string
	Timestamp time.Time
}
