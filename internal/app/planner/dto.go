package planner

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

type PlacementRequest struct {
	SessionID        string
	FloorNumber      int
	RoomPosition     int
	MonsterType      string
	IsBossRoom       bool
	ExistingMonsters []string
}

type PlacementResponse struct {
	rejection.Outcome
	MonsterType      string                  `json:"monsterType"`
	Cost             int                     `json:"cost"`
	ScaledStats      progression.ScaledStats `json:"scaledStats"`
	RoomCapacity     int                     `json:"roomCapacity"`
	Affordable       bool                    `json:"affordable"`
	CanModifyDungeon bool                    `json:"canModifyDungeon"`
}

func (r PlacementResponse) MarshalJSON() ([]byte, error) {
	type payload PlacementResponse
	return rejection.Encode(r.Outcome, payload(r))
}

type RoomRequest struct {
	TotalRooms int
	RoomType   string
}

type RoomResponse struct {
	rejection.Outcome
	RoomType string `json:"roomType"`
	Cost     int    `json:"cost"`
}
