package rejection

import (
	"encoding/json"
	"errors"
	"fmt"

	"dungeoncore/internal/domain/progression"
)

type Code string

const (
	CodeGameNotFound      Code = "GameNotFound"
	CodeAlreadyUnlocked   Code = "AlreadyUnlocked"
	CodeUnknownSpecies    Code = "UnknownSpecies"
	CodeInsufficientGold  Code = "InsufficientGold"
	CodeUnknownMonster    Code = "UnknownMonster"
	CodeInvalidStatus     Code = "InvalidStatus"
	CodeRoomFull          Code = "RoomFull"
	CodeInvalidExperience Code = "InvalidExperience"
	CodeInvalidRequest    Code = "InvalidRequest"
)

const (
	MsgGameNotFound      = "Game not found"
	MsgInvalidExperience = "Experience must be positive"
	MsgInvalidRequest    = "Invalid request"
	MsgUnknownMonster    = "Invalid monster name"
	MsgUnknownSpecies    = "Invalid species name"
	MsgAlreadyUnlocked   = "Species already unlocked"
	MsgInsufficientGold  = "Insufficient gold"
	MsgInvalidStatus     = "Invalid status value"
)

// RoomFullMessage is the player-facing text for a full room.
func RoomFullMessage(position, capacity, tier int) string {
	return fmt.Sprintf("Room %d can only hold %d Tier %d monsters!", position, capacity, tier)
}

// Rejection is an expected business-rule failure. It travels back to the
// caller as data, never as an error.
type Rejection struct {
	Code    Code
	Message string
	Details map[string]any
}

func New(code Code, message string) Rejection {
	return Rejection{Code: code, Message: message}
}

func (r Rejection) With(key string, value any) Rejection {
	details := make(map[string]any, len(r.Details)+1)
	for k, v := range r.Details {
		details[k] = v
	}
	details[key] = value
	r.Details = details
	return r
}

func (r Rejection) Outcome() Outcome {
	return Outcome{Success: false, Error: r.Message, Code: r.Code, Details: r.Details}
}

// From maps a domain rule error to its rejection. The bool is false for
// anything that is not a business-rule failure.
func From(err error) (Rejection, bool) {
	var full *progression.RoomFullError
	if errors.As(err, &full) {
		return New(CodeRoomFull, RoomFullMessage(full.Position, full.Capacity, full.Tier)).
			With("roomPosition", full.Position).
			With("capacity", full.Capacity).
			With("tier", full.Tier), true
	}
	var gold *progression.InsufficientGoldError
	if errors.As(err, &gold) {
		return New(CodeInsufficientGold, MsgInsufficientGold).With("required", gold.Required), true
	}
	switch {
	case errors.Is(err, progression.ErrUnknownMonster):
		return New(CodeUnknownMonster, MsgUnknownMonster), true
	case errors.Is(err, progression.ErrUnknownSpecies):
		return New(CodeUnknownSpecies, MsgUnknownSpecies), true
	case errors.Is(err, progression.ErrAlreadyUnlocked):
		return New(CodeAlreadyUnlocked, MsgAlreadyUnlocked), true
	case errors.Is(err, progression.ErrInsufficientGold):
		return New(CodeInsufficientGold, MsgInsufficientGold), true
	case errors.Is(err, progression.ErrInvalidStatus):
		return New(CodeInvalidStatus, MsgInvalidStatus), true
	}
	return Rejection{}, false
}

// Outcome is embedded in every command response.
type Outcome struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Code    Code           `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func OK() Outcome {
	return Outcome{Success: true}
}

// Encode writes only the outcome for a rejected command and the whole
// payload otherwise, so failures carry no half-filled result fields.
func Encode(out Outcome, payload any) ([]byte, error) {
	if !out.Success {
		return json.Marshal(out)
	}
	return json.Marshal(payload)
}
