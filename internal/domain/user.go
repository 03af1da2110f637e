// Package domain holds room and participant entities and validates the
// identifiers and options that reach them from clients.
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxIDLen          = 128
	MaxDisplayNameLen = 36
)

var ErrIDTooLong = errors.New("identifier too long")

type (
	// ConnID is assigned by the transport and changes on every reconnect.
	ConnID string
	// DeviceID is chosen by the client and survives reconnects from the same device.
	DeviceID string
	// PersistentID is stable within a client session; legacy clients may omit it.
	PersistentID string
)

// Identity is what a client declares about itself when joining a room.
type Identity struct {
	PersistentID PersistentID
	DeviceID     DeviceID
	DisplayName  string
	IsAdmin      bool
}

// NewIdentity avoids raw literals in adapters and normalizes the display name.
func NewIdentity(persistentID, deviceID, displayName string, isAdmin bool) (Identity, error) {
	if len(persistentID) > MaxIDLen || len(deviceID) > MaxIDLen {
		return Identity{}, ErrIDTooLong
	}
	return Identity{
		PersistentID: PersistentID(persistentID),
		DeviceID:     DeviceID(deviceID),
		DisplayName:  NormalizeDisplayName(displayName),
		IsAdmin:      isAdmin,
	}, nil
}

// NormalizeDisplayName trims whitespace and truncates to MaxDisplayNameLen runes.
// An empty name is allowed.
func NormalizeDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxDisplayNameLen {
		return name
	}
	runes := []rune(name)
	return string(runes[:MaxDisplayNameLen])
}
