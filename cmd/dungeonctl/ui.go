package main

import (
	"fmt"
	"io"
	"sort"

	"dungeoncore/internal/domain/progression"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, format+"\n", args...)
}

func printWarn(w io.Writer, format string, args ...any) {
	warn.Fprintf(w, format+"\n", args...)
}

func renderCatalog(w io.Writer, c progression.Catalog) {
	bySpecies := map[string][]progression.MonsterDefinition{}
	for _, m := range c.Monsters() {
		bySpecies[m.Species] = append(bySpecies[m.Species], m)
	}
	names := make([]string, 0, len(bySpecies))
	for s := range bySpecies {
		names = append(names, s)
	}
	sort.Strings(names)

	for _, s := range names {
		accent.Fprintf(w, "%s\n", s)
		monsters := bySpecies[s]
		progression.SortByTier(monsters)
		for _, m := range monsters {
			neutral.Fprintf(w, "  T%d %-20s hp=%-4d atk=%-3d def=%-3d cost=%d\n", m.Tier, m.Name, m.HP, m.Attack, m.Defense, m.BaseCost)
		}
	}

	keys := make([]string, 0)
	for k := range c.Constants() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		accent.Fprintf(w, "constants\n")
	}
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %d\n", k, c.Constants()[k])
	}
}
