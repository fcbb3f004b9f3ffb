package experience

import (
	"context"
	"errors"
	"strings"
	"time"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/cmdmetrics"
	"dungeoncore/internal/app/shared/mutate"
	"dungeoncore/internal/domain/progression"
)

const Command = "gain_experience"

var ErrInvalidRequest = errors.New("invalid gain experience request")

type UseCase struct {
	TxManager ports.TxManager
	Games     ports.GameRepository
	Catalog   ports.CatalogSource
	Metrics   ports.CommandMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	out, err := u.execute(ctx, req)
	cmdmetrics.Record(u.Metrics, Command, out.Outcome, err)
	return out, err
}

func (u UseCase) execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.MonsterName = strings.TrimSpace(req.MonsterName)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, err
	}
	rules := progression.NewRules(catalog)

	var out Response
	runner := mutate.Runner{TxManager: u.TxManager, Games: u.Games, Now: u.Now}
	_, err = runner.Apply(ctx, req.SessionID, func(g *progression.Game) (bool, error) {
		resp, commit := gain(g, rules, req.MonsterName, req.Experience)
		out = resp
		return commit, nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// gain validates everything before touching the game, so a rejected request
// never leaves partial experience behind.
func gain(g *progression.Game, rules progression.Rules, monster string, amount int) (Response, bool) {
	if amount <= 0 {
		return Response{Outcome: rejection.New(rejection.CodeInvalidExperience, rejection.MsgInvalidExperience).Outcome()}, false
	}
	def, ok := rules.MonsterStats(monster)
	if !ok {
		r, _ := rejection.From(progression.ErrUnknownMonster)
		return Response{Outcome: r.Outcome()}, false
	}

	previous := g.MonsterExperienceOf(monster)
	tierBefore := rules.UnlockedTier(g.SpeciesTotalExperience(def.Species))

	total := g.AddMonsterExperience(monster, amount)
	g.AddSpeciesExperience(def.Species, amount)

	unlocks := []progression.TierUnlock{}
	if tierAfter := rules.UnlockedTier(g.SpeciesTotalExperience(def.Species)); tierAfter > tierBefore {
		unlocks = append(unlocks, progression.TierUnlock{Species: def.Species, Tier: tierAfter})
	}

	return Response{
		Outcome:           rejection.OK(),
		MonsterName:       monster,
		PreviousExp:       previous,
		NewExp:            total,
		ExpGained:         amount,
		TierUnlocks:       unlocks,
		SpeciesExperience: copyCounts(g.SpeciesExperience),
		MonsterExperience: copyCounts(g.MonsterExperience),
	}, true
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
