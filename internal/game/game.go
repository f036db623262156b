package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardclient/internal/logging"
)

// settleDelay lets a drag-snap animation finish before the board is repositioned.
const settleDelay = 100 * time.Millisecond

// DefaultRequestTimeout bounds a submission when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// ErrClosed is returned by operations on a closed controller.
var ErrClosed = errors.New("controller closed")

// Endpoints are the remote authority URLs. Undo is optional.
type Endpoints struct {
	Move  string
	Reset string
	Undo  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPromoter sets who is asked for promotion pieces.
func WithPromoter(p Promoter) Option { return func(c *Controller) { c.promoter = p } }

// WithModels sets where the engine variant is read from.
func WithModels(m ModelSelector) Option { return func(c *Controller) { c.models = m } }

// WithJournal records every finished submission.
func WithJournal(j Journal) Option { return func(c *Controller) { c.journal = j } }

// WithTimeout bounds each submission.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// pending is the token of the one submission allowed in flight.
type pending struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

// Controller owns the GameState and mediates between the rendering widget
// and the remote authority. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	state   GameState
	pending *pending
	closed  bool

	transport Transport
	widget    Widget
	promoter  Promoter
	models    ModelSelector
	journal   Journal
	endpoints Endpoints
	timeout   time.Duration

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewController creates a controller holding the start board and no legal
// moves. Every drop is rejected until the first snapshot arrives.
func NewController(t Transport, w Widget, ep Endpoints, opts ...Option) *Controller {
	ctx, stop := context.WithCancel(context.Background())
	c := &Controller{
		state: GameState{
			CurrentBoard:   StartBoard,
			LegalMoves:     make(MoveSet),
			PromotionMoves: make(MoveSet),
		},
		transport: t,
		widget:    w,
		endpoints: ep,
		timeout:   DefaultRequestTimeout,
		ctx:       ctx,
		stop:      stop,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a copy of the current game state.
func (c *Controller) State() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.LegalMoves = c.state.LegalMoves.clone()
	s.PromotionMoves = c.state.PromotionMoves.clone()
	s.MoveInFlight = c.pending != nil
	return s
}

// HandleDrop is called on every drag release.
func (c *Controller) HandleDrop(source, target string) Outcome {
	move := source + target

	c.mu.Lock()
	legal := c.state.LegalMoves.Has(move)
	promo := c.state.PromotionMoves.Has(move)
	c.mu.Unlock()

	if !legal {
		logging.Debugf("drop %s rejected: not legal", move)
		return Snapback
	}

	if promo {
		if c.promoter == nil {
			logging.Warnf("drop %s needs a promotion piece but no promoter is set", move)
			return Snapback
		}
		piece := c.promoter.ChoosePromotion()
		if piece.Code == "" {
			return Snapback
		}
		if !c.promoter.Confirm(fmt.Sprintf("Promote pawn to %s?", piece.Name)) {
			logging.Debugf("promotion %s declined", move)
			return Snapback
		}
		move += piece.Code
	}

	if !c.submit(KindMove, c.endpoints.Move, &move) {
		logging.Debugf("drop %s ignored: submission in flight", move)
		return Ignored
	}
	return Pending
}

// HandleReset asks the authority for a fresh game.
func (c *Controller) HandleReset() Outcome {
	if !c.submit(KindReset, c.endpoints.Reset, nil) {
		return Ignored
	}
	return Pending
}

// HandleUndo asks the authority to restore the position before the last
// submission. It is ignored when no undo endpoint is configured.
func (c *Controller) HandleUndo() Outcome {
	if c.endpoints.Undo == "" {
		logging.Debugf("undo ignored: no endpoint configured")
		return Ignored
	}
	if !c.submit(KindUndo, c.endpoints.Undo, nil) {
		return Ignored
	}
	return Pending
}

// ApplyServerUpdate replaces the state with u, shows the status and, after
// the settle delay, repositions the board. Calling it directly never clears
// the token of a submission still in flight.
func (c *Controller) ApplyServerUpdate(u Update) {
	c.applyServerUpdate(nil, u)
}

// Wait blocks until no submission is in flight.
func (c *Controller) Wait() { c.wg.Wait() }

// Close cancels any pending submission and waits for it to finish.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	if c.pending != nil {
		c.pending.cancel()
	}
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
	return nil
}

// submit checks and sets the in-flight token in one step and dispatches the
// request. It reports false when the gesture has to be dropped.
func (c *Controller) submit(kind Kind, url string, move *string) bool {
	c.mu.Lock()
	if c.closed || c.pending != nil {
		c.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	p := &pending{id: uuid.New(), cancel: cancel}
	c.pending = p
	req := Request{
		CurrentBoard: c.state.CurrentBoard,
		Move:         move,
		Model:        c.model(),
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(WithRequestID(ctx, p.id.String()), p, kind, url, req)
	return true
}

func (c *Controller) model() string {
	if c.models == nil {
		return ""
	}
	return c.models.Model()
}

func (c *Controller) run(ctx context.Context, p *pending, kind Kind, url string, req Request) {
	defer c.wg.Done()
	defer p.cancel()

	entry := Entry{
		ID:        p.id.String(),
		Kind:      kind,
		Model:     req.Model,
		BoardFrom: req.CurrentBoard,
		Started:   time.Now(),
	}
	if req.Move != nil {
		entry.Move = *req.Move
	}
	logging.Debugf("submit %s %s move=%q model=%q", p.id, kind, entry.Move, req.Model)

	body, err := c.transport.Submit(ctx, url, req)
	var u Update
	if err == nil {
		u, err = DecodeUpdate(body)
	}

	if err != nil {
		c.release(p)
		entry.Err = err
		if c.isClosed() && errors.Is(err, context.Canceled) {
			logging.Debugf("submission %s canceled on close", p.id)
		} else {
			logging.Errorf("submission %s (%s) failed: %v", p.id, kind, err)
			c.widget.ShowError(fmt.Errorf("%s failed: %w", kind, err))
		}
	} else {
		c.applyServerUpdate(p, u)
		entry.BoardTo = u.CurrentBoard
		entry.Status = StatusFor(u.IsGameOver, u.IsCheck)
	}
	entry.Elapsed = time.Since(entry.Started)
	c.record(entry)
}

func (c *Controller) applyServerUpdate(p *pending, u Update) {
	c.mu.Lock()
	c.state.CurrentBoard = u.CurrentBoard
	c.state.LegalMoves = u.LegalMoves.clone()
	c.state.PromotionMoves = u.PromotionMoves.clone()
	c.state.IsGameOver = u.IsGameOver
	c.state.IsCheck = u.IsCheck
	status := c.state.Status()
	board := c.state.CurrentBoard
	c.mu.Unlock()

	c.widget.SetStatus(status)

	time.Sleep(settleDelay)
	c.widget.Position(board)
	c.release(p)
}

// release clears the token only if p still owns it.
func (c *Controller) release(p *pending) {
	if p == nil {
		return
	}
	c.mu.Lock()
	if c.pending == p {
		c.pending = nil
	}
	c.mu.Unlock()
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) record(e Entry) {
	if c.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.journal.Record(ctx, e); err != nil {
		logging.Warnf("journal %s: %v", e.ID, err)
	}
}

type requestIDKey struct{}

// WithRequestID attaches the submission token to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the submission token carried by ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
