package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"dungeoncore/internal/adapter/repo/gorm/model"
	"dungeoncore/internal/domain/progression"
	"dungeoncore/internal/logs"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepo serves the monster_types and game_constants tables.
type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db}
}

func (r CatalogRepo) MonsterTypes(ctx context.Context) (map[string]progression.MonsterDefinition, error) {
	var rows []model.MonsterType
	if err := conn(ctx, r.db).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load monster types: %w", err)
	}
	out := make(map[string]progression.MonsterDefinition, len(rows))
	for _, row := range rows {
		rec := progression.MonsterRecord{
			HP:       intPtr(row.Hp),
			Attack:   intPtr(row.Attack),
			Defense:  intPtr(row.Defense),
			Tier:     intPtr(row.Tier),
			Species:  row.Species,
			BaseCost: intPtr(row.BaseCost),
		}
		if row.Traits != nil && *row.Traits != "" {
			if err := json.Unmarshal([]byte(*row.Traits), &rec.Traits); err != nil {
				logs.Warn("invalid monster traits", zap.String("monster", row.Name), zap.Error(err))
			}
		}
		out[row.Name] = rec.Definition(row.Name)
	}
	return out, nil
}

func (r CatalogRepo) GameConstants(ctx context.Context) (map[string]int, error) {
	var rows []model.GameConstant
	if err := conn(ctx, r.db).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load game constants: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Name] = int(row.Value)
	}
	return out, nil
}

// Seed upserts the given monsters and constants by name.
func (r CatalogRepo) Seed(ctx context.Context, monsters map[string]progression.MonsterDefinition, constants map[string]int) error {
	monsterRows := make([]model.MonsterType, 0, len(monsters))
	for name, m := range monsters {
		m = m.Normalize()
		traits, err := json.Marshal(m.Traits)
		if err != nil {
			return fmt.Errorf("encode traits for %s: %w", name, err)
		}
		monsterRows = append(monsterRows, model.MonsterType{
			Name:     name,
			Hp:       int32Ptr(m.HP),
			Attack:   int32Ptr(m.Attack),
			Defense:  int32Ptr(m.Defense),
			Tier:     int32Ptr(m.Tier),
			Species:  &m.Species,
			BaseCost: int32Ptr(m.BaseCost),
			Traits:   strPtr(string(traits)),
		})
	}
	constantRows := make([]model.GameConstant, 0, len(constants))
	for name, v := range constants {
		constantRows = append(constantRows, model.GameConstant{Name: name, Value: int32(v)})
	}

	return NewTxManager(r.db).RunInTx(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		upsert := clause.OnConflict{UpdateAll: true}
		if len(monsterRows) > 0 {
			if err := db.Clauses(upsert).Create(&monsterRows).Error; err != nil {
				return fmt.Errorf("seed monster types: %w", err)
			}
		}
		if len(constantRows) > 0 {
			if err := db.Clauses(upsert).Create(&constantRows).Error; err != nil {
				return fmt.Errorf("seed game constants: %w", err)
			}
		}
		return nil
	})
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func int32Ptr(v int) *int32 {
	n := int32(v)
	return &n
}

func strPtr(s string) *string {
	return &s
}
