package game

import (
	"context"
	"time"
)

// StartBoard is the board a fresh controller holds before the first snapshot.
const StartBoard = "start"

// Outcome tells the rendering widget what to do with a piece after a drop.
type Outcome int

const (
	// Pending means the move was submitted and the piece stays put until
	// the next snapshot.
	Pending Outcome = iota
	// Snapback means the piece must animate back to its origin.
	Snapback
	// Ignored means the gesture was dropped because a submission is in flight.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Snapback:
		return "snapback"
	case Ignored:
		return "ignored"
	}
	return "unknown"
}

// Status is the single indicator shown next to the board.
type Status string

const (
	StatusActive   Status = "Active"
	StatusCheck    Status = "Check"
	StatusGameOver Status = "Game Over"
)

// StatusFor picks the status by priority: game over, then check, then active.
func StatusFor(gameOver, check bool) Status {
	switch {
	case gameOver:
		return StatusGameOver
	case check:
		return StatusCheck
	default:
		return StatusActive
	}
}

// Piece is a promotion choice: a display name and its one-letter move suffix.
type Piece struct {
	Name string
	Code string
}

var (
	Queen  = Piece{Name: "Queen", Code: "q"}
	Rook   = Piece{Name: "Rook", Code: "r"}
	Bishop = Piece{Name: "Bishop", Code: "b"}
	Knight = Piece{Name: "Knight", Code: "n"}
)

// PromotionPieces lists the pieces a pawn may promote to.
var PromotionPieces = []Piece{Queen, Rook, Bishop, Knight}

// GameState is the client-side view of the game. Only the Controller mutates it.
type GameState struct {
	CurrentBoard   string
	LegalMoves     MoveSet
	PromotionMoves MoveSet
	IsGameOver     bool
	IsCheck        bool
	MoveInFlight   bool
}

// Status returns the indicator for the state.
func (s GameState) Status() Status { return StatusFor(s.IsGameOver, s.IsCheck) }

// Request is the JSON body posted to the remote authority.
// A nil Move means reset or undo.
type Request struct {
	CurrentBoard string  `json:"curr_board"`
	Move         *string `json:"move"`
	Model        string  `json:"model"`
}

// Update is a decoded server snapshot.
type Update struct {
	LegalMoves     MoveSet
	PromotionMoves MoveSet
	CurrentBoard   string
	IsGameOver     bool
	IsCheck        bool
}

// Kind names the operation behind a submission.
type Kind string

const (
	KindMove  Kind = "move"
	KindReset Kind = "reset"
	KindUndo  Kind = "undo"
)

// Entry is one finished submission, handed to the Journal.
type Entry struct {
	ID        string
	Kind      Kind
	Move      string
	Model     string
	BoardFrom string
	BoardTo   string
	Status    Status
	Err       error
	Started   time.Time
	Elapsed   time.Duration
}

// Transport posts a request to url and returns the raw response body.
type Transport interface {
	Submit(ctx context.Context, url string, req Request) ([]byte, error)
}

// Widget is the rendering side of the board.
type Widget interface {
	Position(board string)
	SetStatus(s Status)
	ShowError(err error)
}

// Promoter asks the user which piece to promote to and to confirm it.
// Both calls block input until answered.
type Promoter interface {
	ChoosePromotion() Piece
	Confirm(prompt string) bool
}

// ModelSelector returns the engine variant to request, read per submission.
type ModelSelector interface {
	Model() string
}

// Journal records finished submissions.
type Journal interface {
	Record(ctx context.Context, e Entry) error
}
