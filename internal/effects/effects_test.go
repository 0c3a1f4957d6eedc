package effects

import (
	"slices"
	"testing"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

func build(t *testing.T, name, typeLine, text string) *cards.Card {
	t.Helper()
	c, err := cards.Build(cards.Record{Name: name, TypeLine: typeLine, OracleText: text}, nil, false)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", name, err)
	}
	return c
}

func TestDestroyTargetCreature(t *testing.T) {
	c := build(t, "Murder", "Instant", "Destroy target creature.")

	if !IsRemoval(c) {
		t.Error("IsRemoval = false, want true")
	}
	if IsBoardwipe(c) {
		t.Error("IsBoardwipe = true, want false")
	}
	if IsCounter(c) {
		t.Error("IsCounter = true, want false")
	}
}

func TestEdictIsBoardwipe(t *testing.T) {
	c := build(t, "Innocent Blood", "Sorcery", "Each player sacrifices a creature.")

	if !IsBoardwipe(c) {
		t.Error("IsBoardwipe = false, want true")
	}
	if IsRemoval(c) {
		t.Error("IsRemoval = true, want false")
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		text     string
		want     []Category
		notWant  []Category
	}{
		{
			name: "Wrath of God", typeLine: "Sorcery",
			text:    "Destroy all creatures. They can't be regenerated.",
			want:    []Category{Boardwipe},
			notWant: []Category{Removal},
		},
		{
			name: "Counterspell", typeLine: "Instant",
			text:    "Counter target spell.",
			want:    []Category{Counter},
			notWant: []Category{Removal, Bounce},
		},
		{
			name: "Unsummon", typeLine: "Instant",
			text:    "Return target creature to its owner's hand.",
			want:    []Category{Bounce},
			notWant: []Category{Removal, Boardwipe, Recursion},
		},
		{
			name: "Cyclonic Rift", typeLine: "Instant",
			text:    "Return target nonland permanent you don't control to its owner's hand.\nOverload {6}{U}",
			want:    []Category{Bounce, Boardwipe},
			notWant: []Category{Removal},
		},
		{
			name: "Swords to Plowshares", typeLine: "Instant",
			text:    "Exile target creature. Its controller gains life equal to its power.",
			want:    []Category{Removal},
			notWant: []Category{Boardwipe, GraveyardHate},
		},
		{
			name: "Divination", typeLine: "Sorcery",
			text: "Draw two cards.",
			want: []Category{Draw},
		},
		{
			name: "Regrowth", typeLine: "Sorcery",
			text:    "Return target card from your graveyard to your hand.",
			want:    []Category{Recursion},
			notWant: []Category{Reanimation, Bounce, Removal},
		},
		{
			name: "Reanimate", typeLine: "Sorcery",
			text:    "Put target creature card from a graveyard onto the battlefield under your control. You lose life equal to its mana value.",
			want:    []Category{Reanimation},
			notWant: []Category{Recursion},
		},
		{
			name: "Rule of Law", typeLine: "Enchantment",
			text: "Each player can't cast more than one spell each turn.",
			want: []Category{Stax},
		},
		{
			name: "Thalia, Guardian of Thraben", typeLine: "Legendary Creature — Human Soldier",
			text: "First strike\nNoncreature spells cost {1} more to cast.",
			want: []Category{Stax},
		},
		{
			name: "Dark Ritual", typeLine: "Instant",
			text: "Add {B}{B}{B}.",
			want: []Category{FastMana},
		},
		{
			name: "Lotus Petal", typeLine: "Artifact",
			text:    "{T}, Sacrifice Lotus Petal: Add one mana of any color.",
			want:    []Category{FastMana},
			notWant: []Category{Draw},
		},
		{
			name: "Glorious Anthem", typeLine: "Enchantment",
			text: "Creatures you control get +1/+1.",
			want: []Category{Lord},
		},
		{
			name: "Blood Artist", typeLine: "Creature — Vampire",
			text: "Whenever Blood Artist or another creature dies, target player loses 1 life and you gain 1 life.",
			want: []Category{Payoff},
		},
		{
			name: "Ashnod's Altar", typeLine: "Artifact",
			text: "Sacrifice a creature: Add {C}{C}.",
			want: []Category{Payoff},
		},
		{
			name: "Demonic Tutor", typeLine: "Sorcery",
			text:    "Search your library for a card, put that card into your hand, then shuffle.",
			want:    []Category{Tutor},
			notWant: []Category{Draw},
		},
		{
			name: "Path to Exile", typeLine: "Instant",
			text:    "Exile target creature. Its controller may search their library for a basic land card, put that card onto the battlefield tapped, then shuffle.",
			want:    []Category{Removal},
			notWant: []Category{Tutor},
		},
		{
			name: "Aven Mindcensor", typeLine: "Creature — Bird Wizard",
			text:    "Flash\nFlying\nIf an opponent would search a library, that player searches the top four cards of that library instead.",
			notWant: []Category{Tutor},
		},
		{
			name: "Lightning Bolt", typeLine: "Instant",
			text:    "Lightning Bolt deals 3 damage to any target.",
			want:    []Category{Burn},
			notWant: []Category{Removal},
		},
		{
			name: "Time Warp", typeLine: "Sorcery",
			text: "Target player takes an extra turn after this one.",
			want: []Category{ExtraTurn},
		},
		{
			name: "Heroic Intervention", typeLine: "Instant",
			text: "Permanents you control gain hexproof and indestructible until end of turn.",
			want: []Category{Protection},
		},
		{
			name: "Thoughtseize", typeLine: "Sorcery",
			text: "Target player reveals their hand. You choose a nonland card from it. That player discards that card. You lose 2 life.",
			want: []Category{HandAttack},
		},
		{
			name: "Bojuka Bog", typeLine: "Land",
			text: "Bojuka Bog enters tapped.\nWhen Bojuka Bog enters, exile target player's graveyard.\n{T}: Add {B}.",
			want: []Category{GraveyardHate},
		},
		{
			name: "Raise the Alarm", typeLine: "Instant",
			text: "Create two 1/1 white Soldier creature tokens.",
			want: []Category{TokenMaker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build(t, tt.name, tt.typeLine, tt.text)
			got := Classify(c)
			for _, cat := range tt.want {
				if !slices.Contains(got, cat) {
					t.Errorf("Classify() = %v, missing %s", got, cat)
				}
			}
			for _, cat := range tt.notWant {
				if slices.Contains(got, cat) {
					t.Errorf("Classify() = %v, unexpected %s", got, cat)
				}
			}
		})
	}
}

func TestClassify_BackFace(t *testing.T) {
	back := cards.Record{Name: "Back", TypeLine: "Sorcery", OracleText: "Destroy target artifact."}
	c, err := cards.Build(cards.Record{Name: "Front", TypeLine: "Creature — Human", Power: "2", Toughness: "2"}, &back, false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if IsRemoval(c) {
		t.Error("front face alone should not be removal")
	}
	if !slices.Contains(Classify(c), Removal) {
		t.Error("Classify() should include removal from the back face")
	}
}

func TestBucket(t *testing.T) {
	murder := build(t, "Murder", "Instant", "Destroy target creature.")
	divination := build(t, "Divination", "Sorcery", "Draw two cards.")
	deck := []*cards.Card{murder, divination, murder}

	buckets := Bucket(deck)
	if got := buckets[Removal]; len(got) != 2 {
		t.Errorf("removal bucket = %v, want Murder twice", got)
	}
	if got := buckets[Draw]; len(got) != 1 || got[0] != "Divination" {
		t.Errorf("draw bucket = %v", got)
	}
	if got := buckets[Stax]; got == nil || len(got) != 0 {
		t.Errorf("empty buckets should be present and empty, got %v", got)
	}

	counts := buckets.Counts()
	if counts[Removal] != 2 || counts[Draw] != 1 {
		t.Errorf("Counts() = %v", counts)
	}

	again := Bucket(deck)
	for _, cat := range Categories() {
		if !slices.Equal(buckets[cat], again[cat]) {
			t.Errorf("%s: second pass %v differs from first %v", cat, again[cat], buckets[cat])
		}
	}
}

func TestInteraction(t *testing.T) {
	if !Interaction(build(t, "Counterspell", "Instant", "Counter target spell.")) {
		t.Error("counterspell should be interaction")
	}
	if Interaction(build(t, "Divination", "Sorcery", "Draw two cards.")) {
		t.Error("draw should not be interaction")
	}
}

func TestCategories(t *testing.T) {
	if got := Categories(); got[0] != Draw || got[len(got)-1] != Burn {
		t.Errorf("Categories() order = %v", got)
	}
	if len(Categories()) != 18 {
		t.Errorf("Categories() = %d, want 18", len(Categories()))
	}
}
