// Package cards holds the normalized card model, the vocabulary it is
// detected against and the predicate engine every classifier is built on.
package cards

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// StatKind names a printed stat.
type StatKind int

const (
	Power StatKind = iota
	Toughness
	Loyalty
)

func (k StatKind) String() string {
	switch k {
	case Power:
		return "Power"
	case Toughness:
		return "Toughness"
	case Loyalty:
		return "Loyalty"
	default:
		return "Stat(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText renders the stat kind by name.
func (k StatKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Stat is one printed stat. Variable stats such as "*" are stored as 0.
type Stat struct {
	Kind  StatKind `json:"kind"`
	Value int      `json:"value"`
}

func (s Stat) String() string {
	return fmt.Sprintf("%s(%d)", s.Kind, s.Value)
}

// Card is one normalized card face. It is not modified after Build returns.
type Card struct {
	Name         string        `json:"name"`
	ManaValue    float64       `json:"mana_value"`
	ManaCost     string        `json:"mana_cost"`
	CardTypes    []CardType    `json:"card_types"`
	Legendary    bool          `json:"legendary"`
	Stats        []Stat        `json:"stats,omitempty"`
	OracleText   string        `json:"oracle_text"`
	Keys         []Key         `json:"keys,omitempty"`
	Keywords     []Keyword     `json:"keywords,omitempty"`
	Zones        []Zone        `json:"zones,omitempty"`
	OracleTypes  []CardType    `json:"oracle_types,omitempty"`
	Restrictions []Restriction `json:"restrictions,omitempty"`
	Commander    bool          `json:"commander"`
	Backside     *Card         `json:"backside,omitempty"`
}

// Field selects the attribute Contains queries.
type Field int

const (
	FieldManaCost Field = iota
	FieldCardType
	FieldStats
	FieldOracleText
	FieldKeys
	FieldZones
	FieldKeywords
	FieldOracleType
	FieldRestrictions
	FieldName
	FieldCommander
	FieldBackside
	FieldManaValue
)

// Contains reports whether the card matches needle in the given field.
//
// Text fields use case-sensitive substring containment of the needle's
// display form. Set fields compare display forms element by element; a
// CardType needle without subtypes matches its primary type with any
// subtype list. Commander, Backside and ManaValue compare by equality.
func (c *Card) Contains(needle any, field Field) bool {
	switch field {
	case FieldName:
		return strings.Contains(c.Name, display(needle))
	case FieldManaCost:
		return strings.Contains(c.ManaCost, display(needle))
	case FieldOracleText:
		return strings.Contains(c.OracleText, display(needle))
	case FieldCardType:
		return containsType(c.CardTypes, needle)
	case FieldOracleType:
		return containsType(c.OracleTypes, needle)
	case FieldKeys:
		return containsDisplay(c.Keys, needle)
	case FieldZones:
		return containsDisplay(c.Zones, needle)
	case FieldKeywords:
		return containsDisplay(c.Keywords, needle)
	case FieldRestrictions:
		return containsDisplay(c.Restrictions, needle)
	case FieldStats:
		if kind, ok := needle.(StatKind); ok {
			return slices.ContainsFunc(c.Stats, func(s Stat) bool { return s.Kind == kind })
		}
		return containsDisplay(c.Stats, needle)
	case FieldCommander:
		b, ok := needle.(bool)
		return ok && c.Commander == b
	case FieldBackside:
		b, ok := needle.(bool)
		return ok && (c.Backside != nil) == b
	case FieldManaValue:
		f, ok := toFloat(needle)
		return ok && c.ManaValue == f
	}
	return false
}

// Has routes needle to the field its type belongs to: keys, zones,
// keywords, restrictions, card types or stats.
func (c *Card) Has(needle any) bool {
	switch needle.(type) {
	case Key:
		return c.Contains(needle, FieldKeys)
	case Zone:
		return c.Contains(needle, FieldZones)
	case Keyword:
		return c.Contains(needle, FieldKeywords)
	case Restriction:
		return c.Contains(needle, FieldRestrictions)
	case PrimaryType, CardType:
		return c.Contains(needle, FieldCardType)
	case Stat, StatKind:
		return c.Contains(needle, FieldStats)
	}
	return false
}

// IsType reports whether the card itself has the primary type.
func (c *Card) IsType(p PrimaryType) bool {
	return c.Contains(p, FieldCardType)
}

// Mentions reports whether the rules text names the primary type.
func (c *Card) Mentions(p PrimaryType) bool {
	return c.Contains(p, FieldOracleType)
}

// Text is case-sensitive substring containment on the rules text.
func (c *Card) Text(s string) bool {
	return c.Contains(s, FieldOracleText)
}

// Says is case-insensitive containment on the rules text, for phrases that
// may open a sentence.
func (c *Card) Says(s string) bool {
	return strings.Contains(strings.ToLower(c.OracleText), strings.ToLower(s))
}

// SelfReferential reports whether the rules text names the card itself,
// either in full or by the short name before a comma ("Sisay").
func (c *Card) SelfReferential() bool {
	if c.Name == "" {
		return false
	}
	if c.Text(c.Name) {
		return true
	}
	if short, _, ok := strings.Cut(c.Name, ","); ok && short != "" {
		return c.Text(short)
	}
	return false
}

// Stat returns the value of the stat kind, if the card has one.
func (c *Card) Stat(kind StatKind) (int, bool) {
	for _, s := range c.Stats {
		if s.Kind == kind {
			return s.Value, true
		}
	}
	return 0, false
}

// Faces returns the card followed by its back face when it has one.
func (c *Card) Faces() []*Card {
	if c.Backside == nil {
		return []*Card{c}
	}
	return []*Card{c, c.Backside}
}

// PipCount counts occurrences of the color's mana symbol in the cost.
func (c *Card) PipCount(color Color) int {
	return strings.Count(c.ManaCost, color.Symbol())
}

// HasSubtype reports whether any of the card's own types carries s.
func (c *Card) HasSubtype(s Subtype) bool {
	for _, t := range c.CardTypes {
		if t.HasSubtype(s) {
			return true
		}
	}
	return false
}

// MentionedSubtypes returns the subtypes of p that the rules text names,
// matched case-sensitively.
func (c *Card) MentionedSubtypes(p PrimaryType) []Subtype {
	return matchSubtypes(p, c.OracleText)
}

func display(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func containsDisplay[T fmt.Stringer](set []T, needle any) bool {
	want := display(needle)
	for _, e := range set {
		if e.String() == want {
			return true
		}
	}
	return false
}

func containsType(types []CardType, needle any) bool {
	var want CardType
	switch n := needle.(type) {
	case CardType:
		want = n
	case PrimaryType:
		want = CardType{Primary: n}
	default:
		return containsDisplay(types, needle)
	}
	for _, t := range types {
		if t.matches(want) {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
