package internal

import (
	"testing"

	"landlord/internal/domain"
)

func TestDetectPhase(t *testing.T) {
	hands := func(sizes ...int) *domain.Game {
		g := &domain.Game{Players: map[string]*domain.Player{}}
		for i, n := range sizes {
			id := string(rune('a' + i))
			g.Players[id] = &domain.Player{UserID: id, Hand: make([]domain.Card, n)}
		}
		return g
	}

	tests := []struct {
		name string
		game *domain.Game
		want GamePhase
	}{
		{name: "Fresh deal", game: hands(20, 17, 17), want: PhaseOpening},
		{name: "Mid game", game: hands(12, 10, 14), want: PhaseMid},
		{name: "Close to out", game: hands(12, 4, 14), want: PhaseEnd},
		{name: "Nil", game: nil, want: PhaseMid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPhase(tt.game); got != tt.want {
				t.Errorf("DetectPhase() = %v, want %v", got, tt.want)
			}
		})
	}
}
