package species

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

const Command = "unlock_species"

var ErrInvalidRequest = errors.New("invalid unlock species request")

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
		resp, commit := unlock(g, rules, req.SpeciesName)
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

func unlock(g *progression.Game, rules progression.Rules, requested string) (Response, bool) {
	name := strings.TrimSpace(requested)
	if canonical, ok := rules.CanonicalSpecies(name); ok {
		name = canonical
	}
	if name == "" {
		return reject(progression.ErrUnknownSpecies), false
	}
	if g.HasUnlockedSpecies(name) {
		return reject(progression.ErrAlreadyUnlocked), false
	}
	cost, known := rules.SpeciesUnlockCost(name)
	if !known {
		return reject(progression.ErrUnknownSpecies), false
	}

	first := len(g.UnlockedSpecies) == 0
	paid := 0
	if !first {
		if !g.SpendGold(cost) {
			resp := reject(&progression.InsufficientGoldError{Required: cost, Available: g.Gold})
			resp.Required = cost
			return resp, false
		}
		paid = cost
	}
	g.UnlockSpecies(name)

	return Response{
		Outcome:           rejection.OK(),
		SpeciesName:       name,
		CostPaid:          paid,
		RemainingGold:     g.Gold,
		IsFirstSpecies:    first,
		UnlockedSpecies:   append([]string{}, g.UnlockedSpecies...),
		SpeciesExperience: copyCounts(g.SpeciesExperience),
	}, true
}

func reject(err error) Response {
	r, _ := rejection.From(err)
	return Response{Outcome: r.Outcome()}
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
