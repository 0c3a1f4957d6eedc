package cards

import (
	"slices"
	"strings"
)

// PrimaryType is the top-level type of a card, as printed on its type line
// or named in rules text.
type PrimaryType int

const (
	Invalid PrimaryType = iota
	Instant
	Sorcery
	Artifact
	Creature
	Enchantment
	Land
	Planeswalker
	Basic
	Token
	// Generic stands for the word "card" in rules text ("search your library for a card").
	Generic
)

var primaryTypeNames = [...]string{
	Invalid:      "Invalid",
	Instant:      "Instant",
	Sorcery:      "Sorcery",
	Artifact:     "Artifact",
	Creature:     "Creature",
	Enchantment:  "Enchantment",
	Land:         "Land",
	Planeswalker: "Planeswalker",
	Basic:        "Basic",
	Token:        "Token",
	Generic:      "Card",
}

func (p PrimaryType) String() string {
	if p < 0 || int(p) >= len(primaryTypeNames) {
		return primaryTypeNames[Invalid]
	}
	return primaryTypeNames[p]
}

// MarshalText renders the type by name.
func (p PrimaryType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// typeLineTypes is the order in which primary types are matched against a
// type line. Generic and Invalid never appear on a printed type line.
var typeLineTypes = []PrimaryType{
	Instant, Sorcery, Artifact, Creature, Enchantment, Land, Planeswalker, Basic, Token,
}

// oracleTypes is the order in which primary types are matched against
// rules text.
var oracleTypes = []PrimaryType{
	Instant, Sorcery, Artifact, Creature, Enchantment, Land, Planeswalker, Basic, Token, Generic,
}

// Subtype is a subtype name exactly as it is printed on cards.
type Subtype string

func (s Subtype) String() string { return string(s) }

var spellSubtypes = []Subtype{"Adventure", "Arcane", "Lesson", "Trap"}

var artifactSubtypes = []Subtype{
	"Blood", "Clue", "Contraption", "Equipment", "Food", "Fortification", "Gold", "Treasure", "Vehicle",
}

var enchantmentSubtypes = []Subtype{
	"Aura", "Cartouche", "Class", "Curse", "Rune", "Saga", "Shrine", "Shard",
}

var landSubtypes = []Subtype{
	"Plains", "Island", "Swamp", "Mountain", "Forest",
	"Desert", "Gate", "Lair", "Locus", "Urza's Mine", "Urza's Power-Plant", "Urza's Tower",
}

var creatureSubtypes = []Subtype{
	"Advisor", "Aetherborn", "Ally", "Angel", "Antelope", "Ape", "Archer", "Archon", "Army", "Artificer",
	"Assassin", "Assembly-Worker", "Atog", "Aurochs", "Avatar", "Azra", "Badger", "Barbarian", "Bard",
	"Basilisk", "Bat", "Bear", "Beast", "Beeble", "Beholder", "Berserker", "Bird", "Blinkmoth", "Boar",
	"Bringer", "Brushwagg", "Camarid", "Camel", "Caribou", "Carrier", "Cat", "Centaur", "Cephalid",
	"Chimera", "Citizen", "Cleric", "Cockatrice", "Construct", "Coward", "Crab", "Crocodile", "Cyclops",
	"Dauthi", "Demigod", "Demon", "Deserter", "Devil", "Dinosaur", "Djinn", "Dog", "Dragon", "Drake",
	"Dreadnought", "Drone", "Druid", "Dryad", "Dwarf", "Efreet", "Egg", "Elder", "Eldrazi", "Elemental",
	"Elephant", "Elf", "Elk", "Eye", "Faerie", "Ferret", "Fish", "Flagbearer", "Fox", "Fractal", "Frog",
	"Fungus", "Gargoyle", "Germ", "Giant", "Gnoll", "Gnome", "Goat", "Goblin", "God", "Golem", "Gorgon",
	"Graveborn", "Gremlin", "Griffin", "Hag", "Halfling", "Hamster", "Harpy", "Hellion", "Hippo",
	"Hippogriff", "Homarid", "Homunculus", "Horror", "Horse", "Human", "Hydra", "Hyena", "Illusion",
	"Imp", "Incarnation", "Inkling", "Insect", "Jackal", "Jellyfish", "Juggernaut", "Kavu", "Kirin",
	"Kithkin", "Knight", "Kobold", "Kor", "Kraken", "Lamia", "Lammasu", "Leech", "Leviathan", "Lhurgoyf",
	"Licid", "Lizard", "Manticore", "Masticore", "Mercenary", "Merfolk", "Metathran", "Minion",
	"Minotaur", "Mole", "Monger", "Mongoose", "Monk", "Monkey", "Moonfolk", "Mouse", "Mutant", "Myr",
	"Mystic", "Naga", "Nautilus", "Nephilim", "Nightmare", "Nightstalker", "Ninja", "Noble", "Noggle",
	"Nomad", "Nymph", "Octopus", "Ogre", "Ooze", "Orb", "Orc", "Orgg", "Otter", "Ouphe", "Ox", "Oyster",
	"Pangolin", "Peasant", "Pegasus", "Pentavite", "Pest", "Phelddagrif", "Phoenix", "Phyrexian",
	"Pilot", "Pincher", "Pirate", "Plant", "Praetor", "Prism", "Processor", "Rabbit", "Ranger", "Rat",
	"Rebel", "Reflection", "Rhino", "Rigger", "Rogue", "Sable", "Salamander", "Samurai", "Sand",
	"Saproling", "Satyr", "Scarecrow", "Scion", "Scorpion", "Scout", "Sculpture", "Serf", "Serpent",
	"Servo", "Shade", "Shaman", "Shapeshifter", "Shark", "Sheep", "Siren", "Skeleton", "Slith", "Sliver",
	"Slug", "Snake", "Soldier", "Soltari", "Spawn", "Specter", "Spellshaper", "Sphinx", "Spider", "Spike",
	"Spirit", "Splinter", "Sponge", "Squid", "Squirrel", "Starfish", "Surrakar", "Survivor", "Tentacle",
	"Tetravite", "Thalakos", "Thopter", "Tiefling", "Thrull", "Treefolk", "Trilobite", "Triskelavite",
	"Troll", "Turtle", "Unicorn", "Vampire", "Vedalken", "Viashino", "Volver", "Wall", "Warlock",
	"Warrior", "Weird", "Werewolf", "Whale", "Wizard", "Wolf", "Wolverine", "Wombat", "Worm", "Wraith",
	"Wurm", "Yeti", "Zombie", "Zubera",
}

// Subtypes returns the closed subtype vocabulary of a primary type. Types
// without subtypes return nil.
func Subtypes(p PrimaryType) []Subtype {
	switch p {
	case Instant, Sorcery:
		return spellSubtypes
	case Artifact:
		return artifactSubtypes
	case Creature:
		return creatureSubtypes
	case Enchantment:
		return enchantmentSubtypes
	case Land:
		return landSubtypes
	default:
		return nil
	}
}

// matchSubtypes returns every subtype of p whose printed name occurs in text.
// The result is never nil so that "has the type, no listed subtype" stays
// distinguishable from "type absent".
func matchSubtypes(p PrimaryType, text string) []Subtype {
	found := []Subtype{}
	for _, s := range Subtypes(p) {
		if strings.Contains(text, string(s)) {
			found = append(found, s)
		}
	}
	return found
}

// CardType pairs a primary type with the subtypes detected for it.
type CardType struct {
	Primary  PrimaryType `json:"primary"`
	Subtypes []Subtype   `json:"subtypes"`
}

// String returns the display form, which is the primary type name only.
func (t CardType) String() string {
	return t.Primary.String()
}

// HasSubtype reports whether s was detected for this type.
func (t CardType) HasSubtype(s Subtype) bool {
	return slices.Contains(t.Subtypes, s)
}

// matches reports whether t satisfies the needle. A needle without subtypes
// matches on the primary type alone.
func (t CardType) matches(needle CardType) bool {
	if t.Primary.String() != needle.Primary.String() {
		return false
	}
	for _, s := range needle.Subtypes {
		if !t.HasSubtype(s) {
			return false
		}
	}
	return true
}

// ParseTypeLine splits a printed type line into card types. A line matching
// none of the primary types yields a single Invalid entry.
func ParseTypeLine(line string) []CardType {
	var types []CardType
	for _, p := range typeLineTypes {
		if strings.Contains(line, p.String()) {
			types = append(types, CardType{Primary: p, Subtypes: matchSubtypes(p, line)})
		}
	}
	if len(types) == 0 {
		return []CardType{{Primary: Invalid, Subtypes: []Subtype{}}}
	}
	return types
}

// parseOracleTypes detects the card types named in rules text. Land is also
// implied by any basic or special land subtype ("search for a Forest card").
func parseOracleTypes(text string) []CardType {
	lower := strings.ToLower(text)
	var types []CardType
	for _, p := range oracleTypes {
		subs := matchSubtypes(p, text)
		mentioned := strings.Contains(lower, strings.ToLower(p.String()))
		if p == Land && len(subs) > 0 {
			mentioned = true
		}
		if mentioned {
			types = append(types, CardType{Primary: p, Subtypes: subs})
		}
	}
	return types
}
