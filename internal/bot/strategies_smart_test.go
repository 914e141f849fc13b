package bot

import (
	"testing"

	"landlord/internal/domain"
)

func smartBot() *SmartBot {
	return &SmartBot{StandardBot: StandardBot{Tuning: DefaultTuning}}
}

func TestSmartBot_LeadsUnbeatableBeforeGoingOut(t *testing.T) {
	// Rocket first; nothing answers it, then the pair of 3s goes out.
	game, me := table(t, []string{"joker_S", "joker_B", "spade_3", "heart_3"}, nil, "")
	move, err := smartBot().CalculateMove(game, me)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if domain.Classify(move.Cards).Category != domain.Rocket {
		t.Fatalf("expected the rocket, played %v", domain.CardIDs(move.Cards))
	}

	standard, _ := (&StandardBot{Tuning: DefaultTuning}).CalculateMove(game, me)
	if domain.Classify(standard.Cards).Category == domain.Rocket {
		t.Fatal("standard bot should keep the rocket on lead")
	}
}

func TestSmartBot_BombsWhenItWins(t *testing.T) {
	game, me := table(t, []string{"joker_S", "joker_B", "spade_9"}, []string{"heart_5"}, "ll")
	move, _ := smartBot().CalculateMove(game, me)
	if domain.Classify(move.Cards).Category != domain.Rocket {
		t.Fatalf("expected the rocket over the landlord, played %v pass=%v", domain.CardIDs(move.Cards), move.Pass)
	}
}

func TestSmartBot_DoesNotBombPartner(t *testing.T) {
	game, me := table(t, []string{"joker_S", "joker_B", "spade_9"}, []string{"heart_5"}, "pa")
	move, _ := smartBot().CalculateMove(game, me)
	if !move.Pass {
		t.Fatalf("expected a pass behind the partner, played %v", domain.CardIDs(move.Cards))
	}
}

func TestSmartBot_FallsBackToStandardPlay(t *testing.T) {
	game, me := table(t, []string{"spade_4", "spade_9", "spade_Q", "spade_2"}, []string{"heart_8"}, "ll")
	move, _ := smartBot().CalculateMove(game, me)
	if move.Pass || len(move.Cards) != 1 || move.Cards[0].ID() != "spade_9" {
		t.Fatalf("expected spade_9, got %v pass=%v", domain.CardIDs(move.Cards), move.Pass)
	}
}

func TestNewBrainLevels(t *testing.T) {
	tests := []struct {
		difficulty string
		want       BotLevel
	}{
		{"easy", BotLevelGreedy},
		{"standard", BotLevelStandard},
		{"", BotLevelStandard},
		{"hard", BotLevelSmart},
	}
	for _, test := range tests {
		if got := LevelFromDifficulty(test.difficulty); got != test.want {
			t.Errorf("LevelFromDifficulty(%q) = %d, want %d", test.difficulty, got, test.want)
		}
	}
	b, err := NewBrain(BotLevelSmart)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	if _, ok := b.(*SmartBot); !ok {
		t.Fatalf("NewBrain(BotLevelSmart) = %T", b)
	}
	if _, err := NewBrain(BotLevel(99)); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
