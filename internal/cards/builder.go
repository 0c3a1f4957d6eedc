package cards

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
)

// Record is the subset of a card record the builder reads, for one face.
type Record struct {
	Name       string
	ManaCost   string
	TypeLine   string
	OracleText string
	Power      string
	Toughness  string
	Loyalty    string
	Layout     string
}

// Build normalizes one card face, and its back face when back is non-nil.
// The back face is always built as a non-commander card with no further face.
func Build(front Record, back *Record, commander bool) (*Card, error) {
	if strings.TrimSpace(front.Name) == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedRecord)
	}
	if strings.TrimSpace(front.TypeLine) == "" {
		return nil, fmt.Errorf("%w: %q has no type line", ErrMalformedRecord, front.Name)
	}

	card := &Card{
		Name:       front.Name,
		ManaCost:   front.ManaCost,
		ManaValue:  ParseManaValue(front.ManaCost),
		CardTypes:  ParseTypeLine(front.TypeLine),
		Legendary:  strings.Contains(front.TypeLine, "Legendary"),
		Stats:      parseStats(front),
		OracleText: front.OracleText,
		Commander:  commander,
	}

	text := normalize(front.OracleText)
	card.Keys = detectAs[Key](keyTable[:], text)
	card.Zones = detectAs[Zone](zoneTable[:], text)
	card.Restrictions = detectAs[Restriction](restrictionTable[:], text)
	card.Keywords = detectKeywords(text)
	card.OracleTypes = parseOracleTypes(front.OracleText)

	if back != nil {
		face, err := Build(*back, nil, false)
		if err != nil {
			return nil, fmt.Errorf("failed to build back face of %q: %w", front.Name, err)
		}
		card.Backside = face
	}

	return card, nil
}

// FromScryfall builds a card from a Scryfall record. Multi-faced records
// use their first face as the front and their second as the back.
func FromScryfall(rec *scryfall.Card, commander bool) (*Card, error) {
	if rec == nil || rec.NotFound() || rec.Object == "error" {
		return nil, ErrRecordNotFound
	}
	if rec.Name == "" && len(rec.CardFaces) == 0 {
		return nil, ErrRecordNotFound
	}

	if len(rec.CardFaces) >= 2 {
		front := faceRecord(rec.CardFaces[0], rec.Layout)
		back := faceRecord(rec.CardFaces[1], rec.Layout)
		// Split and adventure cards carry the type line on the faces only
		// when they differ; fall back to the card-level one.
		if front.TypeLine == "" {
			front.TypeLine = rec.TypeLine
		}
		if back.TypeLine == "" {
			back.TypeLine = rec.TypeLine
		}
		if front.ManaCost == "" {
			front.ManaCost = rec.ManaCost
		}
		return Build(front, &back, commander)
	}

	return Build(Record{
		Name:       rec.Name,
		ManaCost:   rec.ManaCost,
		TypeLine:   rec.TypeLine,
		OracleText: rec.OracleText,
		Power:      rec.Power,
		Toughness:  rec.Toughness,
		Loyalty:    rec.Loyalty,
		Layout:     rec.Layout,
	}, nil, commander)
}

// Parse decodes a raw JSON card record and builds it.
func Parse(data []byte, commander bool) (*Card, error) {
	var rec scryfall.Card
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return FromScryfall(&rec, commander)
}

func faceRecord(f scryfall.CardFace, layout string) Record {
	return Record{
		Name:       f.Name,
		ManaCost:   f.ManaCost,
		TypeLine:   f.TypeLine,
		OracleText: f.OracleText,
		Power:      f.Power,
		Toughness:  f.Toughness,
		Loyalty:    f.Loyalty,
		Layout:     layout,
	}
}

// ParseManaValue computes the mana value of a printed cost. A numeric
// symbol counts its value and a colored symbol counts one. A hybrid symbol
// counts its largest half, so {G/W} is one and {2/W} is two. Anything that
// does not parse contributes zero, so the result is never negative.
func ParseManaValue(cost string) float64 {
	var value float64
	for _, m := range manaSymbol.FindAllStringSubmatch(cost, -1) {
		var best float64
		for _, half := range strings.Split(m[1], "/") {
			best = max(best, symbolValue(half))
		}
		value += best
	}
	return value
}

var manaSymbol = regexp.MustCompile(`\{([^{}]*)\}`)

func symbolValue(s string) float64 {
	switch s {
	case "W", "U", "B", "R", "G":
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return float64(n)
	}
	return 0
}

func parseStats(r Record) []Stat {
	var stats []Stat
	if r.Power != "" {
		stats = append(stats, Stat{Kind: Power, Value: parseStat(r.Power)})
	}
	if r.Toughness != "" {
		stats = append(stats, Stat{Kind: Toughness, Value: parseStat(r.Toughness)})
	}
	if r.Loyalty != "" {
		stats = append(stats, Stat{Kind: Loyalty, Value: parseStat(r.Loyalty)})
	}
	return stats
}

// parseStat reads "3", "1+*" or "*". Variable parts count as zero.
func parseStat(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	digits := strings.TrimLeftFunc(s, func(r rune) bool { return r == '+' || r == '-' })
	end := strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		end = len(digits)
	}
	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		return 0
	}
	return n
}

func detectAs[T ~int](table []pattern, text string) []T {
	idx := detect(table, text)
	if len(idx) == 0 {
		return nil
	}
	out := make([]T, len(idx))
	for i, v := range idx {
		out[i] = T(v)
	}
	return out
}

func detectKeywords(text string) []Keyword {
	var found []Keyword
	for _, k := range AllKeywords {
		if strings.Contains(text, strings.ToLower(string(k))) {
			found = append(found, k)
		}
	}
	return found
}
