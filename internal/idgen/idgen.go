// Package idgen generates short, URL-safe identifiers for events, tickets and
// profiles.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	EventPrefix   = "evt-"
	TicketPrefix  = "tkt-"
	ProfilePrefix = "usr-"
)

// Alphabet avoids characters that are easy to misread when a gate agent types
// a ticket id by hand.
var Alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length of the random part. 14 characters over a 56 symbol alphabet gives
// roughly 81 bits.
var Length = 14

func Generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

func NewEventID() (string, error)   { return Generate(EventPrefix) }
func NewTicketID() (string, error)  { return Generate(TicketPrefix) }
func NewProfileID() (string, error) { return Generate(ProfilePrefix) }
