package domain

import "sort"

// Category is the structural type of a played hand.
type Category int

const (
	Invalid Category = iota
	Single
	Pair
	Triple
	TripleOne  // three of a kind plus one kicker
	TriplePair // three of a kind plus a pair
	Straight
	StraightPair // consecutive pairs
	Plane        // consecutive triples without kickers
	FourTwo      // four of a kind plus two kickers
	Bomb
	Rocket
)

var categoryNames = map[Category]string{
	Invalid:      "invalid",
	Single:       "single",
	Pair:         "pair",
	Triple:       "triple",
	TripleOne:    "triple_one",
	TriplePair:   "triple_pair",
	Straight:     "straight",
	StraightPair: "straight_pair",
	Plane:        "plane",
	FourTwo:      "four_two",
	Bomb:         "bomb",
	Rocket:       "rocket",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "invalid"
}

// MarshalText encodes the category by its wire name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsLengthSensitive reports whether two hands of this category must have the same run length to compare.
func (c Category) IsLengthSensitive() bool {
	return c == Straight || c == StraightPair || c == Plane
}

// DoublesMultiplier reports whether playing this category doubles the score multiplier.
func (c Category) DoublesMultiplier() bool {
	return c == Bomb || c == Rocket
}

// RocketWeight ranks the rocket above any bomb.
const RocketWeight = 100

// Classification is the result of classifying a set of cards.
type Classification struct {
	Category Category
	Weight   int // comparison key; lowest weight of the run for sequences
	Length   int // number of run units for straight, straight_pair and plane
	Count    int // number of cards
}

// Classify determines the category and comparison key of a card set.
// It is total: any input, including an empty one, yields exactly one category.
func Classify(cards []Card) Classification {
	n := len(cards)
	if n == 0 {
		return Classification{Category: Invalid}
	}

	groups := groupByWeight(cards)
	weights := sortedWeights(groups)
	k := len(weights)
	result := func(cat Category, weight, length int) Classification {
		return Classification{Category: cat, Weight: weight, Length: length, Count: n}
	}

	if n == 2 && isRocket(cards) {
		return result(Rocket, RocketWeight, 0)
	}
	if n == 4 && k == 1 {
		return result(Bomb, weights[0], 0)
	}
	if n == 1 {
		return result(Single, weights[0], 0)
	}
	if n == 2 && k == 1 {
		return result(Pair, weights[0], 0)
	}
	if n == 3 && k == 1 {
		return result(Triple, weights[0], 0)
	}
	if n == 4 {
		if w, ok := firstWithCount(groups, weights, 3); ok {
			return result(TripleOne, w, 0)
		}
	}
	if n == 5 {
		w, ok := firstWithCount(groups, weights, 3)
		if ok && len(weightsWithCount(groups, weights, 2)) == 1 {
			return result(TriplePair, w, 0)
		}
	}
	if n >= 5 && k == n && isRun(weights) {
		return result(Straight, weights[0], n)
	}
	if n >= 6 && n%2 == 0 && len(weightsWithCount(groups, weights, 2)) == k && isRun(weights) {
		return result(StraightPair, weights[0], n/2)
	}
	if n >= 6 && n%3 == 0 {
		triples := weightsWithCount(groups, weights, 3)
		if len(triples) == n/3 && isRun(triples) {
			return result(Plane, triples[0], len(triples))
		}
	}
	// four_two accepts any two kickers.
	if n == 6 || n == 8 {
		if w, ok := firstWithCount(groups, weights, 4); ok {
			return result(FourTwo, w, 0)
		}
	}

	return Classification{Category: Invalid}
}

// Beats reports whether c, played as the attacking hand, beats the defending classification.
func (c Classification) Beats(defending Classification) bool {
	if c.Category == Invalid {
		return false
	}
	if defending.Category == Rocket {
		return false
	}
	if c.Category == Rocket {
		return true
	}
	if c.Category == Bomb {
		if defending.Category != Bomb {
			return true
		}
		return c.Weight > defending.Weight
	}
	if c.Category != defending.Category {
		return false
	}
	if c.Category.IsLengthSensitive() && c.Length != defending.Length {
		return false
	}
	if c.Count != defending.Count {
		return false
	}
	return c.Weight > defending.Weight
}

// CanBeat reports whether the attacking cards can legally be played over the defending cards.
func CanBeat(attacking, defending []Card) bool {
	return Classify(attacking).Beats(Classify(defending))
}

func isRocket(cards []Card) bool {
	if len(cards) != 2 {
		return false
	}
	var small, big bool
	for _, c := range cards {
		switch c {
		case SmallJoker:
			small = true
		case BigJoker:
			big = true
		}
	}
	return small && big
}

func groupByWeight(cards []Card) map[int]int {
	groups := make(map[int]int, len(cards))
	for _, c := range cards {
		groups[c.Weight()]++
	}
	return groups
}

func sortedWeights(groups map[int]int) []int {
	weights := make([]int, 0, len(groups))
	for w := range groups {
		weights = append(weights, w)
	}
	sort.Ints(weights)
	return weights
}

// firstWithCount returns the lowest weight whose group has exactly count cards.
func firstWithCount(groups map[int]int, weights []int, count int) (int, bool) {
	for _, w := range weights {
		if groups[w] == count {
			return w, true
		}
	}
	return 0, false
}

func weightsWithCount(groups map[int]int, weights []int, count int) []int {
	var out []int
	for _, w := range weights {
		if groups[w] == count {
			out = append(out, w)
		}
	}
	return out
}

// isRun reports whether sorted weights are consecutive and stop at the ace.
func isRun(weights []int) bool {
	if len(weights) == 0 || weights[len(weights)-1] > MaxRunWeight {
		return false
	}
	for i := 1; i < len(weights); i++ {
		if weights[i]-weights[i-1] != 1 {
			return false
		}
	}
	return true
}
