package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/corentings/chess/v2"
)

// ProtocolError reports a server payload that does not follow the wire
// contract. Nothing from such a payload is applied.
type ProtocolError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("protocol error: %s", e.Reason)
	}
	return fmt.Sprintf("protocol error: %s: %s", e.Field, e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

type wireUpdate struct {
	LegalMoves *string `json:"legal_moves"`
	Promotions *string `json:"promotions"`
	CurrBoard  *string `json:"curr_board"`
	IsGameOver *bool   `json:"is_game_over"`
	IsCheck    *bool   `json:"is_check"`
}

// DecodeUpdate parses a server response body into an Update.
func DecodeUpdate(body []byte) (Update, error) {
	var w wireUpdate
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&w); err != nil {
		return Update{}, &ProtocolError{Reason: "invalid json", Err: err}
	}
	switch {
	case w.LegalMoves == nil:
		return Update{}, missing("legal_moves")
	case w.Promotions == nil:
		return Update{}, missing("promotions")
	case w.CurrBoard == nil:
		return Update{}, missing("curr_board")
	case w.IsGameOver == nil:
		return Update{}, missing("is_game_over")
	case w.IsCheck == nil:
		return Update{}, missing("is_check")
	}

	if _, err := chess.FEN(*w.CurrBoard); err != nil {
		return Update{}, &ProtocolError{Field: "curr_board", Reason: "not a FEN position", Err: err}
	}

	legal := ParseMoveSet(*w.LegalMoves)
	for m := range legal {
		if !validMove(m) {
			return Update{}, &ProtocolError{Field: "legal_moves", Reason: fmt.Sprintf("bad move %q", m)}
		}
	}
	promos := ParseMoveSet(*w.Promotions)
	for m := range promos {
		if !validMove(m) {
			return Update{}, &ProtocolError{Field: "promotions", Reason: fmt.Sprintf("bad move %q", m)}
		}
		if !legal.Has(m) {
			return Update{}, &ProtocolError{Field: "promotions", Reason: fmt.Sprintf("%s is not a legal move", m)}
		}
	}

	return Update{
		LegalMoves:     legal,
		PromotionMoves: promos,
		CurrentBoard:   *w.CurrBoard,
		IsGameOver:     *w.IsGameOver,
		IsCheck:        *w.IsCheck,
	}, nil
}

func missing(field string) *ProtocolError {
	return &ProtocolError{Field: field, Reason: "missing"}
}
