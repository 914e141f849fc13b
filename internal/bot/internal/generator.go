package internal

import (
	"sort"

	"landlord/internal/domain"
)

// ValidMove represents a possible legal play.
type ValidMove struct {
	Cards          []domain.Card
	Classification domain.Classification
}

// IsBomb reports whether playing the move doubles the multiplier.
func (m ValidMove) IsBomb() bool {
	return m.Classification.Category.DoublesMultiplier()
}

// GetValidMoves returns legal plays for hand. With no last play every
// combination the hand can form is returned, otherwise only those that beat it.
// One representative is produced per rank pattern; suits are interchangeable.
func GetValidMoves(hand []domain.Card, last *domain.Hand) []ValidMove {
	groups := groupByRank(hand)
	ranks := sortedRanks(groups)

	var candidates [][]domain.Card
	candidates = append(candidates, findSets(groups, ranks, 1)...)
	candidates = append(candidates, findSets(groups, ranks, 2)...)
	candidates = append(candidates, findSets(groups, ranks, 3)...)
	candidates = append(candidates, findTriplesWithKicker(groups, ranks, 1)...)
	candidates = append(candidates, findTriplesWithKicker(groups, ranks, 2)...)
	candidates = append(candidates, findRuns(groups, ranks, 1, 5)...)
	candidates = append(candidates, findRuns(groups, ranks, 2, 3)...)
	candidates = append(candidates, findRuns(groups, ranks, 3, 2)...)
	candidates = append(candidates, findSets(groups, ranks, 4)...)
	if rocket := findRocket(groups); rocket != nil {
		candidates = append(candidates, rocket)
	}

	moves := make([]ValidMove, 0, len(candidates))
	for _, cards := range candidates {
		cls := domain.Classify(cards)
		if cls.Category == domain.Invalid {
			continue
		}
		if last != nil && !cls.Beats(last.Classification) {
			continue
		}
		moves = append(moves, ValidMove{Cards: cards, Classification: cls})
	}
	return moves
}

func groupByRank(hand []domain.Card) map[domain.Rank][]domain.Card {
	groups := make(map[domain.Rank][]domain.Card)
	for _, c := range hand {
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	return groups
}

func sortedRanks(groups map[domain.Rank][]domain.Card) []domain.Rank {
	ranks := make([]domain.Rank, 0, len(groups))
	for r := range groups {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

// findSets returns n cards of equal rank for every rank holding at least n.
func findSets(groups map[domain.Rank][]domain.Card, ranks []domain.Rank, n int) [][]domain.Card {
	var out [][]domain.Card
	for _, r := range ranks {
		cards := groups[r]
		if len(cards) < n {
			continue
		}
		out = append(out, append([]domain.Card(nil), cards[:n]...))
	}
	return out
}

// findTriplesWithKicker attaches the lowest available single (size 1) or pair (size 2) to every triple.
func findTriplesWithKicker(groups map[domain.Rank][]domain.Card, ranks []domain.Rank, size int) [][]domain.Card {
	var out [][]domain.Card
	for _, tr := range ranks {
		if len(groups[tr]) < 3 {
			continue
		}
		for _, kr := range ranks {
			if kr == tr || len(groups[kr]) < size {
				continue
			}
			cards := append([]domain.Card(nil), groups[tr][:3]...)
			out = append(out, append(cards, groups[kr][:size]...))
			break
		}
	}
	return out
}

// findRuns returns every run of consecutive ranks up to the ace with width
// cards per rank and at least minLen ranks.
func findRuns(groups map[domain.Rank][]domain.Card, ranks []domain.Rank, width, minLen int) [][]domain.Card {
	var eligible []domain.Rank
	for _, r := range ranks {
		if int(r) <= domain.MaxRunWeight && len(groups[r]) >= width {
			eligible = append(eligible, r)
		}
	}

	var out [][]domain.Card
	for i := range eligible {
		for j := i; j < len(eligible); j++ {
			if j > i && eligible[j] != eligible[j-1]+1 {
				break
			}
			if j-i+1 < minLen {
				continue
			}
			var cards []domain.Card
			for _, r := range eligible[i : j+1] {
				cards = append(cards, groups[r][:width]...)
			}
			out = append(out, cards)
		}
	}
	return out
}

func findRocket(groups map[domain.Rank][]domain.Card) []domain.Card {
	small, big := groups[domain.RankSmallJoker], groups[domain.RankBigJoker]
	if len(small) == 0 || len(big) == 0 {
		return nil
	}
	return []domain.Card{small[0], big[0]}
}
