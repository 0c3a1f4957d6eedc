package mana

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

func build(t *testing.T, name, cost, typeLine, text string) *cards.Card {
	t.Helper()
	c, err := cards.Build(cards.Record{Name: name, ManaCost: cost, TypeLine: typeLine, OracleText: text}, nil, false)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", name, err)
	}
	return c
}

func testDeck(t *testing.T) []*cards.Card {
	return []*cards.Card{
		build(t, "Sol Ring", "{1}", "Artifact", "{T}: Add {C}{C}."),
		build(t, "Llanowar Elves", "{G}", "Creature — Elf Druid", "{T}: Add {G}."),
		build(t, "Cultivate", "{2}{G}", "Sorcery", "Search your library for up to two basic land cards, reveal those cards, put one onto the battlefield tapped and the other into your hand, then shuffle."),
		build(t, "Forest", "", "Basic Land — Forest", ""),
		build(t, "Wild Growth", "{G}", "Enchantment — Aura", "Enchant land\nWhenever enchanted land is tapped for mana, its controller adds an additional {G}."),
		build(t, "Lotus Petal", "{0}", "Artifact", "{T}, Sacrifice Lotus Petal: Add one mana of any color."),
		build(t, "Goblin Electromancer", "{U}{R}", "Creature — Goblin Wizard", "Instant and sorcery spells you cast cost {1} less to cast."),
		build(t, "Exploration", "{G}", "Enchantment", "You may play an additional land on each of your turns."),
		build(t, "Command Tower", "", "Land", "{T}: Add one mana of any color in your commander's color identity."),
	}
}

func TestBuildCurve(t *testing.T) {
	curve := BuildCurve(testDeck(t))

	want := Curve{
		{ManaValue: 0, Cards: []string{"Lotus Petal"}},
		{ManaValue: 1, Cards: []string{"Sol Ring", "Llanowar Elves", "Wild Growth", "Exploration"}},
		{ManaValue: 2, Cards: []string{"Goblin Electromancer"}},
		{ManaValue: 3, Cards: []string{"Cultivate"}},
	}
	if diff := cmp.Diff(want, curve); diff != "" {
		t.Errorf("BuildCurve() mismatch (-want +got):\n%s", diff)
	}
	if curve.Count() != 7 {
		t.Errorf("Count() = %d, want 7", curve.Count())
	}
}

func TestCurve_AverageEmpty(t *testing.T) {
	if got := BuildCurve(nil).Average(); got != 0 {
		t.Errorf("Average() = %v, want 0", got)
	}
}

func TestPips(t *testing.T) {
	pips := Pips(testDeck(t))

	if pips[cards.Green] != 4 {
		t.Errorf("green pips = %d, want 4", pips[cards.Green])
	}
	if pips[cards.Blue] != 1 || pips[cards.Red] != 1 {
		t.Errorf("blue/red pips = %d/%d, want 1/1", pips[cards.Blue], pips[cards.Red])
	}
	if pips[cards.White] != 0 {
		t.Errorf("white pips = %d, want 0", pips[cards.White])
	}
}

func TestProduction(t *testing.T) {
	prod := Production(testDeck(t))

	if prod[cards.Colorless] != 2 {
		t.Errorf("colorless production = %d, want 2 (Sol Ring)", prod[cards.Colorless])
	}
	if prod[cards.Green] != 2 {
		t.Errorf("green production = %d, want 2 (Llanowar Elves, Wild Growth)", prod[cards.Green])
	}
}

func TestFindRamp(t *testing.T) {
	ramp := FindRamp(testDeck(t))

	want := Ramp{
		Dorks:        []string{"Llanowar Elves", "Goblin Electromancer"},
		Artifacts:    []string{"Sol Ring"},
		Enchantments: []string{"Wild Growth"},
		Lands:        []string{"Cultivate", "Exploration"},
	}
	if diff := cmp.Diff(want, ramp); diff != "" {
		t.Errorf("FindRamp() mismatch (-want +got):\n%s", diff)
	}
	if ramp.Total() != 6 {
		t.Errorf("Total() = %d, want 6", ramp.Total())
	}
}

func TestFindRamp_Dedup(t *testing.T) {
	sol := build(t, "Sol Ring", "{1}", "Artifact", "{T}: Add {C}{C}.")
	ramp := FindRamp([]*cards.Card{sol, sol})
	if len(ramp.Artifacts) != 1 {
		t.Errorf("Artifacts = %v, want one Sol Ring", ramp.Artifacts)
	}
}

func TestIsCostReducer_Exclusions(t *testing.T) {
	frogmite := build(t, "Frogmite", "{4}", "Artifact Creature — Frog", "Affinity for artifacts (This spell costs {1} less to cast for each artifact you control.)")
	if IsCostReducer(frogmite) {
		t.Error("Frogmite should not be a cost reducer")
	}
}

func TestAnalyze(t *testing.T) {
	report := Analyze(testDeck(t))
	if len(report.Curve) == 0 || report.AverageManaValue <= 0 {
		t.Errorf("Analyze() curve = %v avg = %v", report.Curve, report.AverageManaValue)
	}
	if report.Ramp.Total() == 0 {
		t.Error("Analyze() found no ramp")
	}
}
