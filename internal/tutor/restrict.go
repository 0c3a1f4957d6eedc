package tutor

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// Op is a numeric comparison named by a restriction.
type Op string

const (
	OpLT Op = "<"
	OpLE Op = "<="
	OpEQ Op = "="
	OpGE Op = ">="
)

func (o Op) apply(value, threshold float64) bool {
	switch o {
	case OpLT:
		return value < threshold
	case OpLE:
		return value <= threshold
	case OpGE:
		return value >= threshold
	default:
		return value == threshold
	}
}

// comparison picks exactly one operator from the tutor's restrictions.
func comparison(tutor *cards.Card) Op {
	switch {
	case tutor.Has(cards.RestrictOrLess):
		return OpLE
	case tutor.Has(cards.RestrictLess) && tutor.Has(cards.RestrictEqual):
		return OpLE
	case tutor.Has(cards.RestrictLess):
		return OpLT
	case tutor.Has(cards.RestrictGreater):
		return OpGE
	default:
		return OpEQ
	}
}

// Stat phrases a numeric limit follows in rules text.
var (
	manaValuePhrases = []string{"mana value", "converted mana cost", "mana cost", "cmc"}
	powerPhrases     = []string{"power"}
	toughnessPhrases = []string{"toughness"}
)

// comparisonWords may sit between a stat phrase and its number.
var comparisonWords = []string{"less", "than", "or", "equal", "to", "greater", "of"}

// threshold is the number written after the first stat phrase, as in
// "mana value 3 or less". Without one it falls back to the lowest number
// word or digit the tutor names.
func threshold(tutor *cards.Card, phrases []string) (float64, bool) {
	if n, ok := numberAfter(tutor.OracleText, phrases); ok {
		return n, true
	}
	for _, r := range cards.NumberRestrictions() {
		if tutor.Has(r) {
			return r.Number()
		}
	}
	return 0, false
}

func numberAfter(text string, phrases []string) (float64, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		rest := lower
		for {
			i := strings.Index(rest, phrase)
			if i < 0 {
				break
			}
			rest = rest[i+len(phrase):]
			if n, ok := leadingNumber(rest); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// leadingNumber reads the first number in s, skipping comparison words. Any
// other word or a clause boundary ends the search.
func leadingNumber(s string) (float64, bool) {
	for _, field := range strings.Fields(s) {
		word := strings.TrimRight(field, ".,;:)")
		if n, err := strconv.Atoi(word); err == nil && n >= 0 {
			return float64(n), true
		}
		if r, ok := numberWord(word); ok {
			return r.Number()
		}
		if word != field || !slices.Contains(comparisonWords, word) {
			return 0, false
		}
	}
	return 0, false
}

func numberWord(w string) (cards.Restriction, bool) {
	return lo.Find(cards.NumberRestrictions(), func(r cards.Restriction) bool {
		return strings.EqualFold(r.String(), w)
	})
}

// restrictedSearch resolves "card with ..." tutors. Keyword candidates are
// always added; then the first matching numeric branch fires, or the
// type and color filter when no keyword candidate was found.
func restrictedSearch(tutor *cards.Card, t cards.CardType, pool []*cards.Card) Search {
	s := Search{Type: t}

	var keywordHits []*cards.Card
	for _, kw := range cards.AllKeywords {
		if kw == cards.Transmute || !tutor.Has(kw) {
			continue
		}
		s.Keywords = append(s.Keywords, kw)
		keywordHits = append(keywordHits, lo.Filter(pool, func(c *cards.Card, _ int) bool { return c.Has(kw) })...)
	}

	var ordered []*cards.Card
	switch {
	case tutor.Has(cards.Transmute):
		s.Branch = BranchTransmute
		ordered = lo.Filter(pool, func(c *cards.Card, _ int) bool { return c.ManaValue == tutor.ManaValue })

	case tutor.Has(cards.RestrictManaValue) || tutor.Has(cards.RestrictManaCost):
		if tutor.Has(cards.RestrictPlus) || tutor.Has(cards.RestrictX) {
			s.Branch = BranchTypeFilter
			ordered, _ = typeAndColor(tutor, t, pool)
			break
		}
		s.Branch = BranchManaValue
		ordered = compareSearch(&s, tutor, t, pool, manaValuePhrases, func(c *cards.Card) (float64, bool) {
			return c.ManaValue, true
		})

	case tutor.Has(cards.RestrictPower):
		s.Branch = BranchPower
		ordered = compareSearch(&s, tutor, t, pool, powerPhrases, statOf(cards.Power))

	case tutor.Has(cards.RestrictToughness):
		s.Branch = BranchToughness
		ordered = compareSearch(&s, tutor, t, pool, toughnessPhrases, statOf(cards.Toughness))

	case len(keywordHits) == 0:
		s.Branch = BranchTypeFilter
		ordered, _ = typeAndColor(tutor, t, pool)

	default:
		s.Branch = BranchKeyword
	}

	s.Targets = names(append(ordered, keywordHits...))
	return s
}

// compareSearch filters cards of type t by the tutor's comparison. Without
// a literal threshold it degrades to the type and color filter.
func compareSearch(s *Search, tutor *cards.Card, t cards.CardType, pool []*cards.Card, phrases []string, value func(*cards.Card) (float64, bool)) []*cards.Card {
	limit, ok := threshold(tutor, phrases)
	if !ok {
		s.Branch = BranchTypeFilter
		out, _ := typeAndColor(tutor, t, pool)
		return out
	}

	op := comparison(tutor)
	s.Op = op
	s.Threshold = &limit
	return lo.Filter(ofType(t, pool), func(c *cards.Card, _ int) bool {
		v, ok := value(c)
		return ok && op.apply(v, limit)
	})
}

func statOf(kind cards.StatKind) func(*cards.Card) (float64, bool) {
	return func(c *cards.Card) (float64, bool) {
		v, ok := c.Stat(kind)
		return float64(v), ok
	}
}
