package cards

import "testing"

func mustBuild(t *testing.T, rec Record) *Card {
	t.Helper()
	c, err := Build(rec, nil, false)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", rec.Name, err)
	}
	return c
}

func TestContains_TextFieldsAreSubstrings(t *testing.T) {
	c := mustBuild(t, Record{
		Name:       "Path to Exile",
		ManaCost:   "{W}",
		TypeLine:   "Instant",
		OracleText: "Exile target creature. Its controller may search their library for a basic land card.",
	})

	tests := []struct {
		needle any
		field  Field
		want   bool
	}{
		{"Exile", FieldOracleText, true},
		{"exile", FieldOracleText, false}, // case-sensitive
		{"Exil", FieldOracleText, true},
		{"Path", FieldName, true},
		{"{W}", FieldManaCost, true},
		{"{U}", FieldManaCost, false},
		{Instant, FieldCardType, true},
		{Sorcery, FieldCardType, false},
		{KeyExile, FieldKeys, true},
		{KeySearch, FieldKeys, true},
		{ZoneLibrary, FieldZones, true},
		{RestrictTarget, FieldRestrictions, true},
		{Land, FieldOracleType, true},
		{Basic, FieldOracleType, true},
		{false, FieldCommander, true},
		{true, FieldCommander, false},
		{false, FieldBackside, true},
		{1.0, FieldManaValue, true},
		{1, FieldManaValue, true},
		{2.0, FieldManaValue, false},
	}

	for _, tt := range tests {
		if got := c.Contains(tt.needle, tt.field); got != tt.want {
			t.Errorf("Contains(%v, %d) = %v, want %v", tt.needle, tt.field, got, tt.want)
		}
	}
}

func TestContains_CardTypeIgnoresSubtypesWithoutConstraint(t *testing.T) {
	c := mustBuild(t, Record{Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid", ManaCost: "{G}"})

	if !c.Contains(CardType{Primary: Creature}, FieldCardType) {
		t.Errorf("bare Creature needle should match")
	}
	if !c.Contains(CardType{Primary: Creature, Subtypes: []Subtype{"Elf"}}, FieldCardType) {
		t.Errorf("Creature(Elf) needle should match")
	}
	if c.Contains(CardType{Primary: Creature, Subtypes: []Subtype{"Goblin"}}, FieldCardType) {
		t.Errorf("Creature(Goblin) needle should not match")
	}
	if !c.Contains("Creature", FieldCardType) {
		t.Errorf("display-string needle should match")
	}
}

func TestContains_Stats(t *testing.T) {
	c := mustBuild(t, Record{Name: "Grizzly Bears", TypeLine: "Creature — Bear", Power: "2", Toughness: "2"})

	if !c.Contains(Power, FieldStats) {
		t.Errorf("kind needle should match")
	}
	if !c.Contains(Stat{Kind: Power, Value: 2}, FieldStats) {
		t.Errorf("exact stat needle should match")
	}
	if c.Contains(Stat{Kind: Power, Value: 3}, FieldStats) {
		t.Errorf("wrong stat value should not match")
	}
	if c.Contains(Loyalty, FieldStats) {
		t.Errorf("creature has no loyalty")
	}
}

func TestContains_Pure(t *testing.T) {
	c := mustBuild(t, Record{Name: "Counterspell", TypeLine: "Instant", ManaCost: "{U}{U}", OracleText: "Counter target spell."})
	for i := 0; i < 3; i++ {
		if !c.Has(KeyCounter) || !c.Has(KeySpell) || c.Has(KeyDestroy) {
			t.Fatalf("iteration %d: unstable result", i)
		}
	}
}

func TestSelfReferential(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Sisay, Weatherlight Captain", "Sisay gets +1/+1 for each color among other legendary permanents you control.", true},
		{"Gravecrawler", "Gravecrawler can't block.", true},
		{"Counterspell", "Counter target spell.", false},
	}
	for _, tt := range tests {
		c := mustBuild(t, Record{Name: tt.name, TypeLine: "Creature", OracleText: tt.text})
		if got := c.SelfReferential(); got != tt.want {
			t.Errorf("%s: SelfReferential() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSays_CaseInsensitive(t *testing.T) {
	c := mustBuild(t, Record{Name: "Test", TypeLine: "Sorcery", OracleText: "Create a Treasure token."})
	if !c.Says("create") || c.Text("create") {
		t.Errorf("Says should ignore case while Text should not")
	}
}
