package progression

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMonster   = errors.New("invalid monster name")
	ErrUnknownSpecies   = errors.New("invalid species name")
	ErrAlreadyUnlocked  = errors.New("species already unlocked")
	ErrInsufficientGold = errors.New("insufficient gold")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrRoomFull         = errors.New("room full")
)

type RoomFullError struct {
	Position int
	Capacity int
	Tier     int
}

func (e *RoomFullError) Error() string {
	return fmt.Sprintf("room %d holds at most %d tier %d monsters", e.Position, e.Capacity, e.Tier)
}

func (e *RoomFullError) Unwrap() error {
	return ErrRoomFull
}

type InsufficientGoldError struct {
	Required  int
	Available int
}

func (e *InsufficientGoldError) Error() string {
	return fmt.Sprintf("insufficient gold: need %d, have %d", e.Required, e.Available)
}

func (e *InsufficientGoldError) Unwrap() error {
	return ErrInsufficientGold
}
