package mongocatalog

import (
	"context"
	"errors"
	"fmt"

	"dungeoncore/internal/domain/progression"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	monsterCollection  = "monster_types"
	constantCollection = "game_constants"
)

type monsterDoc struct {
	Name     string   `bson:"_id"`
	HP       *int     `bson:"hp,omitempty"`
	Attack   *int     `bson:"attack,omitempty"`
	Defense  *int     `bson:"defense,omitempty"`
	Tier     *int     `bson:"tier,omitempty"`
	Species  *string  `bson:"species,omitempty"`
	BaseCost *int     `bson:"base_cost,omitempty"`
	Traits   []string `bson:"traits,omitempty"`
}

type constantDoc struct {
	Name  string `bson:"_id"`
	Value int    `bson:"value"`
}

type Provider struct {
	monsters  *mongo.Collection
	constants *mongo.Collection
}

func NewProvider(db *mongo.Database) *Provider {
	return &Provider{
		monsters:  db.Collection(monsterCollection),
		constants: db.Collection(constantCollection),
	}
}

func (p *Provider) MonsterTypes(ctx context.Context) (map[string]progression.MonsterDefinition, error) {
	if p == nil || p.monsters == nil {
		return nil, errors.New("mongodb monster collection is nil")
	}
	cursor, err := p.monsters.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find monster types: %w", err)
	}
	var docs []monsterDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode monster types: %w", err)
	}
	out := make(map[string]progression.MonsterDefinition, len(docs))
	for _, d := range docs {
		rec := progression.MonsterRecord{
			HP:       d.HP,
			Attack:   d.Attack,
			Defense:  d.Defense,
			Tier:     d.Tier,
			Species:  d.Species,
			BaseCost: d.BaseCost,
			Traits:   d.Traits,
		}
		out[d.Name] = rec.Definition(d.Name)
	}
	return out, nil
}

func (p *Provider) GameConstants(ctx context.Context) (map[string]int, error) {
	if p == nil || p.constants == nil {
		return nil, errors.New("mongodb constants collection is nil")
	}
	cursor, err := p.constants.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find game constants: %w", err)
	}
	var docs []constantDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode game constants: %w", err)
	}
	out := make(map[string]int, len(docs))
	for _, d := range docs {
		out[d.Name] = d.Value
	}
	return out, nil
}

// Seed upserts every monster and constant. Existing documents with other
// names are left alone.
func (p *Provider) Seed(ctx context.Context, monsters map[string]progression.MonsterDefinition, constants map[string]int) error {
	for name, m := range monsters {
		m = m.Normalize()
		doc := monsterDoc{
			Name:     name,
			HP:       &m.HP,
			Attack:   &m.Attack,
			Defense:  &m.Defense,
			Tier:     &m.Tier,
			Species:  &m.Species,
			BaseCost: &m.BaseCost,
			Traits:   m.Traits,
		}
		if _, err := p.monsters.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed monster %s: %w", name, err)
		}
	}
	for name, v := range constants {
		doc := constantDoc{Name: name, Value: v}
		if _, err := p.constants.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed constant %s: %w", name, err)
		}
	}
	return nil
}
