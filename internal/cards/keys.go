package cards

import (
	"strconv"
	"strings"
)

// Key is a coarse token detected in rules text. Keys are the first filter
// every classifier applies before looking at finer phrases.
type Key int

const (
	KeyExile Key = iota
	KeyDestroy
	KeyReturn
	KeyDraw
	KeyCounter
	KeyDamage
	KeyAttach
	KeyFight
	KeyMill
	KeySacrifice
	KeyScry
	KeySurveil
	KeyTap
	KeyUntap
	KeyDiscard
	KeySearch
	KeyPlayer
	KeyOpponent
	KeyToken
	KeyAdd
	KeyRemove
	KeyPut
	KeyReveal
	KeyCast
	KeySpell
	KeyCopy
	KeyCost
	KeyCreate
	KeyGain
	KeyInvestigate
	KeyETB
	KeyDies
	KeyAnyColor
	KeyLegendary
	KeyNonLegendary
	KeyWhite
	KeyBlue
	KeyBlack
	KeyRed
	KeyGreen
	KeyColorless
	KeySWhite
	KeySBlue
	KeySBlack
	KeySRed
	KeySGreen
	numKeys
)

type pattern struct {
	name     string
	patterns []string
}

// Patterns are matched against lowercased, whitespace-normalized text.
var keyTable = [numKeys]pattern{
	KeyExile:        {"Exile", []string{"exile"}},
	KeyDestroy:      {"Destroy", []string{"destroy"}},
	KeyReturn:       {"Return", []string{"return"}},
	KeyDraw:         {"Draw", []string{"draw"}},
	KeyCounter:      {"Counter", []string{"counter"}},
	KeyDamage:       {"Damage", []string{"damage"}},
	KeyAttach:       {"Attach", []string{"attach"}},
	KeyFight:        {"Fight", []string{"fight"}},
	KeyMill:         {"Mill", []string{"mill"}},
	KeySacrifice:    {"Sacrifice", []string{"sacrifice"}},
	KeyScry:         {"Scry", []string{"scry"}},
	KeySurveil:      {"Surveil", []string{"surveil"}},
	KeyTap:          {"Tap", []string{"{t}"}},
	KeyUntap:        {"Untap", []string{"untap"}},
	KeyDiscard:      {"Discard", []string{"discard"}},
	KeySearch:       {"Search", []string{"search"}},
	KeyPlayer:       {"Player", []string{"player"}},
	KeyOpponent:     {"Opponent", []string{"opponent"}},
	KeyToken:        {"Token", []string{"token"}},
	KeyAdd:          {"Add", []string{"add"}},
	KeyRemove:       {"Remove", []string{"remove"}},
	KeyPut:          {"Put", []string{"put"}},
	KeyReveal:       {"Reveal", []string{"reveal"}},
	KeyCast:         {"Cast", []string{"cast"}},
	KeySpell:        {"Spell", []string{"spell"}},
	KeyCopy:         {"Copy", []string{"copy"}},
	KeyCost:         {"Cost", []string{"cost"}},
	KeyCreate:       {"Create", []string{"create"}},
	KeyGain:         {"Gain", []string{"gain"}},
	KeyInvestigate:  {"Investigate", []string{"investigate"}},
	KeyETB:          {"ETB", []string{"enters", "enter the battlefield"}},
	KeyDies:         {"Dies", []string{"dies"}},
	KeyAnyColor:     {"AnyColor", []string{"any color"}},
	KeyLegendary:    {"Legendary", []string{"legendary"}},
	KeyNonLegendary: {"NonLegendary", []string{"nonlegendary"}},
	KeyWhite:        {"White", []string{"{w}"}},
	KeyBlue:         {"Blue", []string{"{u}"}},
	KeyBlack:        {"Black", []string{"{b}"}},
	KeyRed:          {"Red", []string{"{r}"}},
	KeyGreen:        {"Green", []string{"{g}"}},
	KeyColorless:    {"Colorless", []string{"{c}"}},
	KeySWhite:       {"SWhite", word("white")},
	KeySBlue:        {"SBlue", word("blue")},
	KeySBlack:       {"SBlack", word("black")},
	KeySRed:         {"SRed", word("red")},
	KeySGreen:       {"SGreen", word("green")},
}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
	return keyTable[k].name
}

// MarshalText renders the key by name.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Zone is a game zone referenced by rules text.
type Zone int

const (
	ZoneBattlefield Zone = iota
	ZoneHand
	ZoneExile
	ZoneGraveyard
	ZoneCommand
	ZoneLibrary
	numZones
)

var zoneTable = [numZones]pattern{
	ZoneBattlefield: {"Battlefield", []string{"battlefield"}},
	ZoneHand:        {"Hand", []string{"hand"}},
	ZoneExile:       {"Exile", []string{"exile"}},
	ZoneGraveyard:   {"Graveyard", []string{"graveyard"}},
	ZoneCommand:     {"CommandZone", []string{"command zone"}},
	ZoneLibrary:     {"Library", []string{"library"}},
}

func (z Zone) String() string {
	if z < 0 || z >= numZones {
		return "Zone(" + strconv.Itoa(int(z)) + ")"
	}
	return zoneTable[z].name
}

// MarshalText renders the zone by name.
func (z Zone) MarshalText() ([]byte, error) { return []byte(z.String()), nil }

// Restriction is a fine-grained comparative or scoping token. Tutors use
// them to resolve numeric limits and classifiers use them for quantifiers.
type Restriction int

const (
	RestrictTarget Restriction = iota
	RestrictEach
	RestrictAll
	RestrictEvery
	RestrictZero
	RestrictOne
	RestrictTwo
	RestrictThree
	RestrictFour
	RestrictFive
	RestrictSix
	RestrictSeven
	RestrictEight
	RestrictNine
	RestrictTen
	RestrictEleven
	RestrictTwelve
	RestrictLess
	RestrictEqual
	RestrictOrLess
	RestrictGreater
	RestrictPlus
	RestrictMinus
	RestrictControl
	RestrictYou
	RestrictOwn
	RestrictWhenever
	RestrictWith
	RestrictCant
	RestrictAnother
	RestrictOther
	RestrictPower
	RestrictToughness
	RestrictManaValue
	RestrictManaCost
	RestrictX
	RestrictInstead
	RestrictUntil
	RestrictTop
	RestrictUpkeep
	numRestrictions
)

var numberWords = [...]string{
	"zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "eleven", "twelve",
}

var restrictionTable = func() [numRestrictions]pattern {
	t := [numRestrictions]pattern{
		RestrictTarget:    {"Target", []string{"target"}},
		RestrictEach:      {"Each", word("each")},
		RestrictAll:       {"All", word("all")},
		RestrictEvery:     {"Every", word("every")},
		RestrictLess:      {"Less", []string{" less"}},
		RestrictEqual:     {"Equal", []string{"equal"}},
		RestrictOrLess:    {"OrLess", []string{"or less"}},
		RestrictGreater:   {"Greater", []string{"greater", "or more"}},
		RestrictPlus:      {"PlusSymbol", signed("+")},
		RestrictMinus:     {"MinusSymbol", append(signed("-"), "−")},
		RestrictControl:   {"Control", []string{"control"}},
		RestrictYou:       {"You", []string{"you"}},
		RestrictOwn:       {"Own", word("own")},
		RestrictWhenever:  {"Whenever", []string{"whenever"}},
		RestrictWith:      {"With", word("with")},
		RestrictCant:      {"Cant", []string{"can't", "cannot"}},
		RestrictAnother:   {"Another", []string{"another"}},
		RestrictOther:     {"Other", []string{"other"}},
		RestrictPower:     {"Power", []string{"power"}},
		RestrictToughness: {"Toughness", []string{"toughness"}},
		RestrictManaValue: {"ManaValue", []string{"mana value", "converted mana cost", "cmc"}},
		RestrictManaCost:  {"ManaCost", []string{"mana cost"}},
		RestrictX:         {"X", append(word("x"), "{x}")},
		RestrictInstead:   {"Instead", []string{"instead"}},
		RestrictUntil:     {"Until", []string{"until"}},
		RestrictTop:       {"Top", []string{"top"}},
		RestrictUpkeep:    {"Upkeep", []string{"upkeep"}},
	}
	for n, w := range numberWords {
		name := strings.ToUpper(w[:1]) + w[1:]
		t[RestrictZero+Restriction(n)] = pattern{name, append(word(w), word(strconv.Itoa(n))...)}
	}
	return t
}()

// word expands w into the substrings it takes when standing alone in
// whitespace-normalized text padded with a leading and trailing space.
func word(w string) []string {
	var out []string
	for _, lead := range []string{" ", "("} {
		for _, trail := range []string{" ", ".", ",", ":", ";", ")"} {
			out = append(out, lead+w+trail)
		}
	}
	return out
}

// signed expands a sign into the substrings it takes before a number or X.
func signed(sign string) []string {
	out := []string{sign + "x"}
	for d := 0; d <= 9; d++ {
		out = append(out, sign+strconv.Itoa(d))
	}
	return out
}

func (r Restriction) String() string {
	if r < 0 || r >= numRestrictions {
		return "Restriction(" + strconv.Itoa(int(r)) + ")"
	}
	return restrictionTable[r].name
}

// MarshalText renders the restriction by name.
func (r Restriction) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Number returns the literal value of a Zero..Twelve token.
func (r Restriction) Number() (float64, bool) {
	if r < RestrictZero || r > RestrictTwelve {
		return 0, false
	}
	return float64(r - RestrictZero), true
}

// NumberRestrictions lists Zero..Twelve in ascending order.
func NumberRestrictions() []Restriction {
	out := make([]Restriction, 0, len(numberWords))
	for r := RestrictZero; r <= RestrictTwelve; r++ {
		out = append(out, r)
	}
	return out
}

// Color is one of the five colors, or colorless mana.
type Color int

const (
	White Color = iota
	Blue
	Black
	Red
	Green
	Colorless
)

// Colors lists the five colors in WUBRG order, without Colorless.
var Colors = []Color{White, Blue, Black, Red, Green}

var colorInfo = [...]struct {
	name, symbol string
	key, search  Key
}{
	White:     {"White", "{W}", KeyWhite, KeySWhite},
	Blue:      {"Blue", "{U}", KeyBlue, KeySBlue},
	Black:     {"Black", "{B}", KeyBlack, KeySBlack},
	Red:       {"Red", "{R}", KeyRed, KeySRed},
	Green:     {"Green", "{G}", KeyGreen, KeySGreen},
	Colorless: {"Colorless", "{C}", KeyColorless, -1},
}

func (c Color) String() string { return colorInfo[c].name }

// MarshalText renders the color by name.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Symbol is the mana symbol of the color, e.g. "{G}".
func (c Color) Symbol() string { return colorInfo[c].symbol }

// ManaKey is the key set when rules text contains the color's mana symbol.
func (c Color) ManaKey() Key { return colorInfo[c].key }

// SearchKey is the key set when rules text names the color as a word, as in
// "search your library for a green creature card". Colorless has none.
func (c Color) SearchKey() (Key, bool) {
	k := colorInfo[c].search
	return k, k >= 0
}

// detect returns the indexes of every table entry with a pattern present in
// text, or nil when none match.
func detect(table []pattern, text string) []int {
	var found []int
	for i, p := range table {
		for _, s := range p.patterns {
			if strings.Contains(text, s) {
				found = append(found, i)
				break
			}
		}
	}
	return found
}

// normalize lowercases text, collapses whitespace and pads it with single
// spaces so that standalone-word patterns also match at the edges.
func normalize(text string) string {
	return " " + strings.Join(strings.Fields(strings.ToLower(text)), " ") + " "
}
