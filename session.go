package main

import (
	"context"
	"strings"

	"boardclient/internal/config"
	"boardclient/internal/game"
	"boardclient/internal/storage"
	"boardclient/internal/view"
)

const help = `commands:
  e2e4 | e2 e4   drop a piece from source to target
  reset          start a new game
  undo           take back the last move
  model <name>   switch engine variant
  status         redraw the board
  history        list journaled submissions
  quit
`

// session drives the controller from line-oriented console input.
type session struct {
	ctrl   *game.Controller
	term   *view.Terminal
	models *config.ModelChoice
	store  *storage.Store
}

// run fetches the first snapshot and then handles commands until EOF or quit.
func (s *session) run() {
	s.term.Printf(help)
	s.ctrl.HandleReset()
	s.ctrl.Wait()
	for {
		s.term.Printf("> ")
		line, err := s.term.ReadLine()
		if err != nil {
			return
		}
		if !s.dispatch(line) {
			return
		}
		s.ctrl.Wait()
	}
}

// dispatch handles one command line and reports whether to keep going.
func (s *session) dispatch(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		s.term.Printf(help)
	case "reset":
		s.report(s.ctrl.HandleReset())
	case "undo":
		if s.ctrl.HandleUndo() == game.Ignored {
			s.term.Printf("undo unavailable or busy\n")
		}
	case "status":
		st := s.ctrl.State()
		s.term.SetStatus(st.Status())
		s.term.Position(st.CurrentBoard)
	case "model":
		if len(fields) < 2 {
			s.term.Printf("model: %s (choices: %s)\n", s.models.Model(), strings.Join(s.models.Choices(), ", "))
			return true
		}
		if err := s.models.Set(fields[1]); err != nil {
			s.term.ShowError(err)
		}
	case "history":
		s.history()
	default:
		src, dst, ok := parseDrop(fields)
		if !ok {
			s.term.Printf("unknown command %q, type help\n", line)
			return true
		}
		s.report(s.ctrl.HandleDrop(src, dst))
	}
	return true
}

func (s *session) report(o game.Outcome) {
	switch o {
	case game.Snapback:
		s.term.Printf("snapback\n")
	case game.Ignored:
		s.term.Printf("busy, try again\n")
	}
}

func (s *session) history() {
	if s.store == nil {
		s.term.Printf("journal disabled\n")
		return
	}
	rows, err := s.store.History(context.Background())
	if err != nil {
		s.term.ShowError(err)
		return
	}
	for _, r := range rows {
		s.term.Printf("%s %-5s %-6s %-9s %dms %s\n", r.CreatedAt.Format("15:04:05"), r.Kind, r.Move, r.Status, r.ElapsedMS, r.Error)
	}
}

// parseDrop accepts "e2e4" or "e2 e4".
func parseDrop(fields []string) (string, string, bool) {
	var move string
	switch len(fields) {
	case 1:
		move = fields[0]
	case 2:
		move = fields[0] + fields[1]
	default:
		return "", "", false
	}
	if len(move) != 4 || !isSquare(move[:2]) || !isSquare(move[2:]) {
		return "", "", false
	}
	return move[:2], move[2:], true
}

func isSquare(sq string) bool {
	return sq[0] >= 'a' && sq[0] <= 'h' && sq[1] >= '1' && sq[1] <= '8'
}
