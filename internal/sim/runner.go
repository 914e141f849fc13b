// Package sim plays bot-only landlord games in-process on a virtual clock.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"landlord/internal/app"
	"landlord/internal/bot"
	"landlord/internal/config"
	"landlord/internal/domain"
	"landlord/internal/ports"

	"go.uber.org/zap"
)

// maxActions bounds one game; a game that runs longer is reported as stuck.
const maxActions = 5000

var ErrStuck = errors.New("game did not finish")

// virtualClock only moves when the runner jumps it to the next deadline.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

// Runner seats three bots at a table and plays games back to back.
type Runner struct {
	svc     *app.Service
	clock   *virtualClock
	agents  map[string]*bot.Agent
	seats   []string
	results ports.ResultsPort
	logger  *zap.Logger
	base    int64
}

// NewRunner builds a runner. results may be nil when games are not archived.
func NewRunner(cfg config.GameConfig, seed int64, results ports.ResultsPort, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := &virtualClock{now: time.Unix(0, 0).UTC()}
	r := &Runner{
		svc:     app.NewService(cfg, rand.New(rand.NewSource(seed)), clock.Now),
		clock:   clock,
		agents:  make(map[string]*bot.Agent, config.TablePlayers),
		results: results,
		logger:  logger,
		base:    cfg.BaseScore,
	}
	for i := 0; i < config.TablePlayers; i++ {
		identity := bot.GetBotIdentity(i)
		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("bot %d: %w", i, err)
		}
		r.agents[agent.ID] = agent
		r.seats = append(r.seats, agent.ID)
	}
	return r, nil
}

// Players returns the bot user ids seated at the table.
func (r *Runner) Players() []string {
	return append([]string(nil), r.seats...)
}

// PlayGame runs one game to its close and archives the result.
func (r *Runner) PlayGame(ctx context.Context) (*domain.Game, error) {
	game, _, err := r.svc.StartGame(r.seats)
	if err != nil {
		return nil, err
	}
	log := r.logger.With(zap.String("game_id", game.ID))

	for i := 0; i < maxActions && !game.Closed; i++ {
		if err := ctx.Err(); err != nil {
			return game, err
		}
		if agent := r.actor(game); agent != nil {
			if err := r.act(game, agent); err != nil {
				return game, fmt.Errorf("bot %s: %w", agent.ID, err)
			}
			continue
		}
		if game.Pending == domain.StepNone {
			return game, fmt.Errorf("%w: nothing pending in phase %s", ErrStuck, game.Phase)
		}
		r.clock.now = game.Deadline
		r.logEvents(log, r.svc.Tick(game))
	}
	if !game.Closed {
		return game, fmt.Errorf("%w after %d actions", ErrStuck, maxActions)
	}

	rec, ok := app.Record(game, "", r.base, r.clock.Now())
	if !ok {
		log.Warn("game closed without settlement", zap.String("reason", game.EndReason))
		return game, nil
	}
	log.Info("game finished",
		zap.String("landlord", rec.LandlordID),
		zap.String("winner", rec.WinnerID),
		zap.Int("bid", rec.Bid),
		zap.Int("multiplier", rec.Multiplier))
	if r.results != nil {
		if err := r.results.RecordGame(ctx, rec); err != nil {
			return game, fmt.Errorf("record game: %w", err)
		}
	}
	return game, nil
}

// actor returns the agent whose decision the game is waiting on.
func (r *Runner) actor(game *domain.Game) *bot.Agent {
	if game.Pending != domain.StepAwaitBid && game.Pending != domain.StepAwaitPlay {
		return nil
	}
	return r.agents[game.CurrentPlayerID]
}

func (r *Runner) act(game *domain.Game, agent *bot.Agent) error {
	if game.Phase == domain.PhaseBidding {
		score := agent.Bid(game)
		if _, err := r.svc.Bid(game, agent.ID, score); err != nil {
			r.logger.Debug("bid rejected", zap.String("bot", agent.ID), zap.Int("score", score), zap.Error(err))
			_, err = r.svc.Bid(game, agent.ID, 0)
			return err
		}
		return nil
	}

	move, err := agent.Play(game)
	if err == nil {
		if move.Pass {
			_, err = r.svc.Pass(game, agent.ID)
		} else {
			_, err = r.svc.PlayCards(game, agent.ID, move.Cards)
		}
		if err == nil {
			return nil
		}
	}
	r.logger.Debug("move rejected", zap.String("bot", agent.ID), zap.Error(err))

	if !game.MustPlay {
		_, err = r.svc.Pass(game, agent.ID)
		return err
	}
	lowest, ok := domain.LowestCard(game.Player(agent.ID).Hand)
	if !ok {
		return app.ErrEmptyPlay
	}
	_, err = r.svc.PlayCards(game, agent.ID, []domain.Card{lowest})
	return err
}

func (r *Runner) logEvents(log *zap.Logger, events []app.Event) {
	for _, e := range events {
		if e.Private() {
			continue
		}
		log.Debug("event", zap.String("kind", string(e.Kind)), zap.Any("payload", e.Payload))
	}
}
