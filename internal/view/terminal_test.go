package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"boardclient/internal/game"
)

func init() {
	color.NoColor = true
}

func TestPieceFor(t *testing.T) {
	cases := map[string]game.Piece{
		"":       game.Queen,
		"q":      game.Queen,
		"R":      game.Rook,
		"bishop": game.Bishop,
		" n ":    game.Knight,
		"king":   {},
	}
	for in, want := range cases {
		if got := PieceFor(in); got != want {
			t.Fatalf("PieceFor(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestPromotionPrompts(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("r\nyes\n"), &out)

	if p := term.ChoosePromotion(); p != game.Rook {
		t.Fatalf("expected rook, got %+v", p)
	}
	if !term.Confirm("Promote pawn to Rook?") {
		t.Fatalf("expected confirmation")
	}
	if !strings.Contains(out.String(), "Promote pawn to Rook? [y/N]") {
		t.Fatalf("prompt not shown: %q", out.String())
	}
	if term.Confirm("again?") {
		t.Fatalf("EOF must not confirm")
	}
}

func TestPositionDrawsBoardWithStatus(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)

	term.SetStatus(game.StatusCheck)
	out.Reset()
	term.Position("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")

	got := out.String()
	if !strings.Contains(got, "status:  Check ") {
		t.Fatalf("status missing: %q", got)
	}
	if !strings.Contains(got, "fen:    rnbqkbnr/pppp1ppp") {
		t.Fatalf("fen missing: %q", got)
	}
}

func TestPositionStartAndInvalid(t *testing.T) {
	start, fen, err := Draw(game.StartBoard)
	if err != nil || fen != "" || start == "" {
		t.Fatalf("draw start: %q %q %v", start, fen, err)
	}

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)
	term.Position("garbage")
	if !strings.Contains(out.String(), "cannot draw board") {
		t.Fatalf("expected draw error, got %q", out.String())
	}
}

func TestShowError(t *testing.T) {
	var out bytes.Buffer
	NewTerminal(strings.NewReader(""), &out).ShowError(errors.New("move failed: timeout"))
	if out.String() != "error: move failed: timeout\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
