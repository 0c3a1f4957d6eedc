package tutor

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

type fixture struct {
	name, cost, typeLine, text, power, toughness string
}

func build(t *testing.T, s fixture) *cards.Card {
	t.Helper()
	c, err := cards.Build(cards.Record{
		Name: s.name, ManaCost: s.cost, TypeLine: s.typeLine, OracleText: s.text,
		Power: s.power, Toughness: s.toughness,
	}, nil, false)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", s.name, err)
	}
	return c
}

func library(t *testing.T) []*cards.Card {
	fixtures := []fixture{
		{name: "Llanowar Elves", cost: "{G}", typeLine: "Creature — Elf Druid", text: "{T}: Add {G}.", power: "1", toughness: "1"},
		{name: "Grizzly Bears", cost: "{1}{G}", typeLine: "Creature — Bear", power: "2", toughness: "2"},
		{name: "Hill Giant", cost: "{3}{R}", typeLine: "Creature — Giant", power: "3", toughness: "3"},
		{name: "Tarmogoyf", cost: "{1}{G}", typeLine: "Creature — Lhurgoyf", power: "*", toughness: "1+*"},
		{name: "Sol Ring", cost: "{1}", typeLine: "Artifact", text: "{T}: Add {C}{C}."},
		{name: "Lotus Petal", cost: "{0}", typeLine: "Artifact", text: "{T}, Sacrifice Lotus Petal: Add one mana of any color."},
		{name: "Mind Stone", cost: "{2}", typeLine: "Artifact", text: "{T}: Add {C}."},
		{name: "Island", typeLine: "Basic Land — Island"},
		{name: "Forest", typeLine: "Basic Land — Forest"},
		{name: "Steam Vents", typeLine: "Land — Island Mountain"},
		{name: "Command Tower", typeLine: "Land", text: "{T}: Add one mana of any color in your commander's color identity."},
		{name: "Isamaru, Hound of Konda", cost: "{W}", typeLine: "Legendary Creature — Dog", power: "2", toughness: "2"},
		{name: "Counterspell", cost: "{U}{U}", typeLine: "Instant", text: "Counter target spell."},
	}
	out := make([]*cards.Card, 0, len(fixtures))
	for _, s := range fixtures {
		out = append(out, build(t, s))
	}
	return out
}

func sorted(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

func TestResolve_PowerOrLess(t *testing.T) {
	tutor := build(t, fixture{
		name: "Imperial Recruiter", cost: "{2}{R}", typeLine: "Creature — Human Advisor", power: "1", toughness: "1",
		text: "Search your library for a creature card with power 2 or less, reveal it, put it into your hand",
	})
	lib := append(library(t), tutor)

	for _, r := range []cards.Restriction{cards.RestrictPower, cards.RestrictOrLess, cards.RestrictTwo} {
		if !tutor.Has(r) {
			t.Fatalf("tutor restrictions %v missing %s", tutor.Restrictions, r)
		}
	}

	searches := Resolve(tutor, lib)
	if len(searches) != 1 {
		t.Fatalf("Resolve() returned %d searches, want 1: %+v", len(searches), searches)
	}
	s := searches[0]
	if s.Branch != BranchPower || s.Op != OpLE || s.Threshold == nil || *s.Threshold != 2 {
		t.Errorf("search = %+v, want power <= 2", s)
	}

	want := []string{"Grizzly Bears", "Isamaru, Hound of Konda", "Llanowar Elves", "Tarmogoyf"}
	if diff := cmp.Diff(want, sorted(s.Targets)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ManaValue(t *testing.T) {
	tests := []struct {
		name string
		text string
		op   Op
		want []string
	}{
		{
			name: "or less",
			text: "When Trinket Mage enters, you may search your library for an artifact card with mana value 1 or less, reveal it, put it into your hand, then shuffle.",
			op:   OpLE,
			want: []string{"Lotus Petal", "Sol Ring"},
		},
		{
			name: "less than",
			text: "Search your library for an artifact card with mana value less than 2, reveal it, put it into your hand, then shuffle.",
			op:   OpLT,
			want: []string{"Lotus Petal", "Sol Ring"},
		},
		{
			name: "less than or equal",
			text: "Search your library for an artifact card with mana value less than or equal to 2, reveal it, put it into your hand, then shuffle.",
			op:   OpLE,
			want: []string{"Lotus Petal", "Mind Stone", "Sol Ring"},
		},
		{
			name: "equal",
			text: "Search your library for an artifact card with mana value 2, reveal it, put it into your hand, then shuffle.",
			op:   OpEQ,
			want: []string{"Mind Stone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor := build(t, fixture{name: "Test Tutor", cost: "{2}{U}", typeLine: "Sorcery", text: tt.text})
			searches := Resolve(tutor, library(t))
			if len(searches) != 1 {
				t.Fatalf("Resolve() = %+v, want 1 search", searches)
			}
			s := searches[0]
			if s.Branch != BranchManaValue || s.Op != tt.op {
				t.Errorf("branch/op = %s/%s, want %s/%s", s.Branch, s.Op, BranchManaValue, tt.op)
			}
			if diff := cmp.Diff(tt.want, sorted(s.Targets)); diff != "" {
				t.Errorf("targets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_VariableManaValueUsesColorFilter(t *testing.T) {
	tutor := build(t, fixture{
		name: "Green Sun's Zenith", cost: "{X}{G}", typeLine: "Sorcery",
		text: "Search your library for a green creature card with mana value X or less, put it onto the battlefield, then shuffle. Shuffle Green Sun's Zenith into its owner's library.",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) != 1 || searches[0].Branch != BranchTypeFilter {
		t.Fatalf("Resolve() = %+v, want one type_filter search", searches)
	}
	want := []string{"Grizzly Bears", "Llanowar Elves", "Tarmogoyf"}
	if diff := cmp.Diff(want, sorted(searches[0].Targets)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Transmute(t *testing.T) {
	tutor := build(t, fixture{
		name: "Dizzy Spell", cost: "{U}", typeLine: "Instant",
		text: "Target creature gets -3/-0 until end of turn.\nTransmute {1}{U}{U} ({1}{U}{U}, Discard this card: Search your library for a card with the same mana value as this card, reveal it, put it into your hand, then shuffle. Transmute only as a sorcery.)",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) == 0 {
		t.Fatal("Resolve() returned nothing")
	}
	for _, s := range searches {
		if s.Branch != BranchTransmute {
			t.Errorf("branch = %s, want transmute", s.Branch)
		}
		for _, name := range s.Targets {
			if name != "Llanowar Elves" && name != "Sol Ring" && name != "Isamaru, Hound of Konda" {
				t.Errorf("unexpected transmute target %q", name)
			}
		}
	}
}

func TestResolve_Generic(t *testing.T) {
	tutor := build(t, fixture{
		name: "Demonic Tutor", cost: "{1}{B}", typeLine: "Sorcery",
		text: "Search your library for a card, put that card into your hand, then shuffle.",
	})
	lib := append(library(t), tutor)

	searches := Resolve(tutor, lib)
	if len(searches) != 1 || searches[0].Branch != BranchLibrary {
		t.Fatalf("Resolve() = %+v, want one library search", searches)
	}
	if len(searches[0].Targets) != len(lib)-1 {
		t.Errorf("targets = %d, want %d", len(searches[0].Targets), len(lib)-1)
	}
	if slices.Contains(searches[0].Targets, "Demonic Tutor") {
		t.Error("tutor targets itself")
	}
}

func TestResolve_GenericLegendary(t *testing.T) {
	tutor := build(t, fixture{
		name: "Legendary Finder", cost: "{2}", typeLine: "Artifact",
		text: "{2}, {T}: Search your library for a legendary card, reveal it, put it into your hand, then shuffle.",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) != 1 || searches[0].Branch != BranchLegendary {
		t.Fatalf("Resolve() = %+v, want one legendary search", searches)
	}
	if diff := cmp.Diff([]string{"Isamaru, Hound of Konda"}, searches[0].Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_LandSubtypes(t *testing.T) {
	tutor := build(t, fixture{
		name: "Farseek", cost: "{1}{G}", typeLine: "Sorcery",
		text: "Search your library for a Plains, Island, Swamp, or Mountain card, put it onto the battlefield tapped, then shuffle.",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) != 1 || searches[0].Branch != BranchLandSubtype {
		t.Fatalf("Resolve() = %+v, want one land_subtype search", searches)
	}
	want := []string{"Island", "Steam Vents"}
	if diff := cmp.Diff(want, sorted(searches[0].Targets)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_BasicSupersedesLand(t *testing.T) {
	tutor := build(t, fixture{
		name: "Cultivate", cost: "{2}{G}", typeLine: "Sorcery",
		text: "Search your library for up to two basic land cards, reveal those cards, put one onto the battlefield tapped and the other into your hand, then shuffle.",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) != 1 || searches[0].Type.Primary != cards.Basic {
		t.Fatalf("Resolve() = %+v, want one Basic search", searches)
	}
	want := []string{"Forest", "Island"}
	if diff := cmp.Diff(want, sorted(searches[0].Targets)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Named(t *testing.T) {
	tutor := build(t, fixture{
		name: "Sisay, Weatherlight Captain", cost: "{2}{W}", typeLine: "Legendary Creature — Human Soldier", power: "2", toughness: "2",
		text: "Sisay gets +1/+1 for each color among other legendary permanents you control.\n{W}{U}{B}{R}{G}: Search your library for a legendary permanent card with mana value less than Sisay's power, put that card onto the battlefield, then shuffle.",
	})

	searches := Resolve(tutor, library(t))
	if len(searches) != 1 || searches[0].Branch != BranchNamed {
		t.Fatalf("Resolve() = %+v, want one named search", searches)
	}
	if diff := cmp.Diff([]string{"Isamaru, Hound of Konda"}, searches[0].Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkDeck(t *testing.T) {
	commander := build(t, fixture{
		name: "Demonic Commander", cost: "{2}{B}", typeLine: "Legendary Creature — Demon", power: "3", toughness: "3",
		text: "{T}: Search your library for a card, put that card into your hand, then shuffle.",
	})
	recruiter := build(t, fixture{
		name: "Imperial Recruiter", cost: "{2}{R}", typeLine: "Creature — Human Advisor", power: "1", toughness: "1",
		text: "Search your library for a creature card with power 2 or less, reveal it, put it into your hand",
	})
	lib := append(library(t), recruiter)

	links := LinkDeck([]*cards.Card{commander}, lib)
	if len(links) != 2 {
		t.Fatalf("LinkDeck() found %d tutors, want 2: %+v", len(links), links)
	}
	got := []string{links[0].Tutor, links[1].Tutor}
	if diff := cmp.Diff([]string{"Demonic Commander", "Imperial Recruiter"}, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("tutors mismatch (-want +got):\n%s", diff)
	}

	for _, l := range links {
		if slices.Contains(l.Targets(), l.Tutor) {
			t.Errorf("%s targets itself", l.Tutor)
		}
		for _, s := range l.Searches {
			if s.Op != "" && s.Threshold == nil {
				t.Errorf("%s: op %s without threshold", l.Tutor, s.Op)
			}
		}
	}
}

func withExtras(t *testing.T, extras ...fixture) []*cards.Card {
	lib := library(t)
	for _, f := range extras {
		lib = append(lib, build(t, f))
	}
	return lib
}

func TestResolve_Branches(t *testing.T) {
	witness := fixture{name: "Eternal Witness", cost: "{1}{G}{G}", typeLine: "Creature — Human Shaman", power: "2", toughness: "1"}
	birds := fixture{name: "Birds of Paradise", cost: "{G}", typeLine: "Creature — Bird", text: "Flying\n{T}: Add one mana of any color.", power: "0", toughness: "1"}
	thopter := fixture{name: "Ornithopter", cost: "{0}", typeLine: "Artifact Creature — Thopter", text: "Flying", power: "0", toughness: "2"}

	tests := []struct {
		name      string
		text      string
		extras    []fixture
		branch    Branch
		op        Op
		threshold float64
		want      []string
	}{
		{
			name:      "quantity before mana value",
			text:      "Search your library for up to two creature cards with mana value 3 or less, reveal them, put them into your hand, then shuffle.",
			extras:    []fixture{witness},
			branch:    BranchManaValue,
			op:        OpLE,
			threshold: 3,
			want:      []string{"Eternal Witness", "Grizzly Bears", "Isamaru, Hound of Konda", "Llanowar Elves", "Tarmogoyf"},
		},
		{
			name:      "toughness or less",
			text:      "Search your library for a creature card with toughness 2 or less, reveal it, put it into your hand, then shuffle.",
			branch:    BranchToughness,
			op:        OpLE,
			threshold: 2,
			want:      []string{"Grizzly Bears", "Isamaru, Hound of Konda", "Llanowar Elves", "Tarmogoyf"},
		},
		{
			name:      "strictly less",
			text:      "Search your library for a creature card with toughness less than 2, reveal it, put it into your hand, then shuffle.",
			branch:    BranchToughness,
			op:        OpLT,
			threshold: 2,
			want:      []string{"Llanowar Elves", "Tarmogoyf"},
		},
		{
			name:      "greater",
			text:      "Search your library for a creature card with power 3 or greater, reveal it, put it into your hand, then shuffle.",
			branch:    BranchPower,
			op:        OpGE,
			threshold: 3,
			want:      []string{"Hill Giant"},
		},
		{
			name:      "mana value wins over power",
			text:      "Search your library for a creature card with mana value 1 or less and power 3 or greater, reveal it, put it into your hand, then shuffle.",
			branch:    BranchManaValue,
			op:        OpLE,
			threshold: 1,
			want:      []string{"Isamaru, Hound of Konda", "Llanowar Elves"},
		},
		{
			name:   "keyword candidates",
			text:   "Search your library for a creature card with flying, reveal it, put it into your hand, then shuffle.",
			extras: []fixture{birds, thopter},
			branch: BranchKeyword,
			want:   []string{"Birds of Paradise", "Ornithopter"},
		},
		{
			name:   "color without X",
			text:   "Search your library for a green creature card, reveal it, put it into your hand, then shuffle.",
			branch: BranchColor,
			want:   []string{"Grizzly Bears", "Llanowar Elves", "Tarmogoyf"},
		},
		{
			name:   "with outside the search clause",
			text:   "Search your library for a green creature card, reveal it, put it into your hand, then shuffle. You gain 2 life for each creature you control with flying.",
			branch: BranchColor,
			want:   []string{"Grizzly Bears", "Llanowar Elves", "Tarmogoyf"},
		},
		{
			name:   "investigate land search",
			text:   "Search your library for a Forest card, put it onto the battlefield tapped, then shuffle. Investigate.",
			branch: BranchLandSubtype,
			want:   []string{},
		},
		{
			name:   "subtype absent from deck",
			text:   "Search your library for an Aura card, reveal it, put it into your hand, then shuffle.",
			branch: BranchSubtype,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor := build(t, fixture{name: "Test Tutor", cost: "{1}{G}", typeLine: "Sorcery", text: tt.text})
			searches := Resolve(tutor, withExtras(t, tt.extras...))
			if len(searches) != 1 {
				t.Fatalf("Resolve() = %+v, want 1 search", searches)
			}
			s := searches[0]
			if s.Branch != tt.branch || s.Op != tt.op {
				t.Errorf("branch/op = %s/%s, want %s/%s", s.Branch, s.Op, tt.branch, tt.op)
			}
			if tt.op != "" && (s.Threshold == nil || *s.Threshold != tt.threshold) {
				t.Errorf("threshold = %v, want %v", s.Threshold, tt.threshold)
			}
			if diff := cmp.Diff(tt.want, sorted(s.Targets), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("targets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		text    string
		phrases []string
		want    float64
		ok      bool
	}{
		{"Search your library for up to two creature cards with mana value 3 or less.", manaValuePhrases, 3, true},
		{"Search your library for an artifact card with mana value less than or equal to four.", manaValuePhrases, 4, true},
		{"Search your library for an artifact card with converted mana cost 1 or less.", manaValuePhrases, 1, true},
		{"You lose 1 life. Search your library for a creature card with power 5 or greater.", powerPhrases, 5, true},
		{"Search your library for two creature cards with toughness equal to their power.", toughnessPhrases, 2, true},
		{"Search your library for a card.", manaValuePhrases, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tutor := build(t, fixture{name: "Test Tutor", typeLine: "Sorcery", text: tt.text})
			got, ok := threshold(tutor, tt.phrases)
			if ok != tt.ok || got != tt.want {
				t.Errorf("threshold() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
