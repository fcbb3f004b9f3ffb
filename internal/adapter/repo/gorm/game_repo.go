package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"dungeoncore/internal/adapter/repo/gorm/model"
	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/domain/progression"
	"dungeoncore/internal/logs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return GameRepo{db: db}
}

func (r GameRepo) FindBySessionID(ctx context.Context, sessionID string) (progression.Game, error) {
	db := conn(ctx, r.db)
	var m model.Player
	if err := db.Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.Game{}, ports.ErrNotFound
		}
		return progression.Game{}, fmt.Errorf("find player: %w", err)
	}
	var parties int64
	if err := db.Model(&model.AdventurerParty{}).
		Where("player_id = ? AND retreating = ?", m.ID, false).
		Count(&parties).Error; err != nil {
		return progression.Game{}, fmt.Errorf("count active parties: %w", err)
	}
	return toGame(m, int(parties)), nil
}

func (r GameRepo) Create(ctx context.Context, sessionID string) (progression.Game, error) {
	game := progression.NewGame(0, sessionID)
	game.Version = 1
	game.UpdatedAt = time.Now().UTC()
	m, err := toModel(game)
	if err != nil {
		return progression.Game{}, err
	}
	m.CreatedAt = game.UpdatedAt
	if err := conn(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return progression.Game{}, ports.ErrConflict
		}
		return progression.Game{}, fmt.Errorf("create player: %w", err)
	}
	game.ID = m.ID
	return game, nil
}

func (r GameRepo) SaveWithVersion(ctx context.Context, game progression.Game, expectedVersion int64) error {
	m, err := toModel(game)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"mana":               m.Mana,
		"max_mana":           m.MaxMana,
		"mana_regen":         m.ManaRegen,
		"gold":               m.Gold,
		"souls":              m.Souls,
		"day":                m.Day,
		"hour":               m.Hour,
		"status":             m.Status,
		"unlocked_species":   m.UnlockedSpecies,
		"species_experience": m.SpeciesExperience,
		"monster_experience": m.MonsterExperience,
		"version":            game.Version,
		"updated_at":         m.UpdatedAt,
	}
	res := conn(ctx, r.db).Model(&model.Player{}).
		Where("id = ? AND version = ?", game.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("save player: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r GameRepo) ResetGame(ctx context.Context, gameID int64) error {
	d := progression.Defaults()
	res := conn(ctx, r.db).Model(&model.Player{}).
		Where("id = ?", gameID).
		Updates(map[string]any{
			"mana":       d.Mana,
			"max_mana":   d.MaxMana,
			"mana_regen": d.ManaRegen,
			"gold":       d.Gold,
			"souls":      d.Souls,
			"day":        d.Day,
			"hour":       d.Hour,
			"status":     string(d.Status),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("reset player: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toGame(m model.Player, parties int) progression.Game {
	g := progression.Game{
		ID:                m.ID,
		SessionID:         m.SessionID,
		Mana:              int(m.Mana),
		MaxMana:           int(m.MaxMana),
		ManaRegen:         int(m.ManaRegen),
		Gold:              int(m.Gold),
		Souls:             int(m.Souls),
		Day:               int(m.Day),
		Hour:              int(m.Hour),
		Status:            progression.StatusOpen,
		UnlockedSpecies:   decodeList(m.ID, "unlocked_species", m.UnlockedSpecies),
		SpeciesExperience: decodeCounts(m.ID, "species_experience", m.SpeciesExperience),
		MonsterExperience: decodeCounts(m.ID, "monster_experience", m.MonsterExperience),
		Version:           m.Version,
		UpdatedAt:         m.UpdatedAt,
	}
	if s, ok := progression.ParseStatus(m.Status); ok {
		g.Status = s
	} else {
		logs.Warn("unknown stored status, using Open", zap.Int64("player_id", m.ID), zap.String("status", m.Status))
	}
	g.SetActivePartyCount(parties)
	return g
}

func toModel(g progression.Game) (model.Player, error) {
	g.EnsureCollections()
	species, err := json.Marshal(g.UnlockedSpecies)
	if err != nil {
		return model.Player{}, fmt.Errorf("encode unlocked_species: %w", err)
	}
	speciesExp, err := json.Marshal(g.SpeciesExperience)
	if err != nil {
		return model.Player{}, fmt.Errorf("encode species_experience: %w", err)
	}
	monsterExp, err := json.Marshal(g.MonsterExperience)
	if err != nil {
		return model.Player{}, fmt.Errorf("encode monster_experience: %w", err)
	}
	return model.Player{
		ID:                g.ID,
		SessionID:         g.SessionID,
		Mana:              clampInt32(g.Mana),
		MaxMana:           clampInt32(g.MaxMana),
		ManaRegen:         clampInt32(g.ManaRegen),
		Gold:              clampInt32(g.Gold),
		Souls:             clampInt32(g.Souls),
		Day:               clampInt32(g.Day),
		Hour:              clampInt32(g.Hour),
		Status:            string(g.Status),
		UnlockedSpecies:   string(species),
		SpeciesExperience: string(speciesExp),
		MonsterExperience: string(monsterExp),
		Version:           g.Version,
		UpdatedAt:         g.UpdatedAt,
	}, nil
}

// clampInt32 saturates counters that outgrow the INTEGER columns.
func clampInt32(v int) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// decodeList and decodeCounts never return nil: empty, NULL and malformed
// column values all decode to an empty collection.
func decodeList(playerID int64, column, raw string) []string {
	out := []string{}
	if raw == "" || raw == "null" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		logs.Warn("invalid json column", zap.Int64("player_id", playerID), zap.String("column", column), zap.Error(err))
		return []string{}
	}
	return out
}

func decodeCounts(playerID int64, column, raw string) map[string]int {
	out := map[string]int{}
	if raw == "" || raw == "null" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		logs.Warn("invalid json column", zap.Int64("player_id", playerID), zap.String("column", column), zap.Error(err))
		return map[string]int{}
	}
	return out
}
