package models

import "strings"

// SetType classifies an exercise set.
type SetType string

const (
	SetTypeWarmup  SetType = "warmup"
	SetTypeWorking SetType = "working"
	SetTypeDrop    SetType = "drop"
	SetTypeFailure SetType = "failure"
)

// setTypeMap maps lowercased stored/user-facing names (including a few
// spellings other apps use in their exports) to canonical set types.
var setTypeMap = map[string]SetType{
	"warmup":   SetTypeWarmup,
	"warm-up":  SetTypeWarmup,
	"warm up":  SetTypeWarmup,
	"wu":       SetTypeWarmup,
	"working":  SetTypeWorking,
	"normal":   SetTypeWorking,
	"straight": SetTypeWorking,
	"drop":     SetTypeDrop,
	"dropset":  SetTypeDrop,
	"drop set": SetTypeDrop,
	"failure":  SetTypeFailure,
	"amrap":    SetTypeFailure,
}

// ParseSetType maps a stored string to its SetType. Unrecognized values fall
// back to SetTypeWorking so stale or foreign rows still read as a valid type.
func ParseSetType(raw string) SetType {
	if t, ok := setTypeMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return SetTypeWorking
}

func (t SetType) String() string { return string(t) }
