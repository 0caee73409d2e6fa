package core

import "errors"

var (
	// ErrHubStopped is returned when a task is submitted after the hub exits.
	ErrHubStopped = errors.New("hub stopped")
	// ErrNotInChannel is returned by channel-only operations on other screens.
	ErrNotInChannel = errors.New("not in channel")
)
