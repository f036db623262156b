package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/corentings/chess/v2"
	"github.com/fatih/color"

	"boardclient/internal/game"
)

var frame = template.Must(template.New("frame").Parse(`{{.Board}}
status: {{.Status}}
{{- if .FEN}}
fen:    {{.FEN}}{{end}}
`))

var badges = map[game.Status]*color.Color{
	game.StatusActive:   color.New(color.FgBlack, color.BgGreen),
	game.StatusCheck:    color.New(color.FgBlack, color.BgYellow),
	game.StatusGameOver: color.New(color.FgWhite, color.BgRed),
}

// Terminal renders the board and status to a writer and reads promotion
// answers from a reader. It implements game.Widget and game.Promoter.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	in     *bufio.Reader
	status game.Status
}

// NewTerminal creates a terminal view over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in), status: game.StatusActive}
}

// ReadLine reads one trimmed line of user input.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line != "" {
		return line, nil
	}
	return line, err
}

// Printf writes a message line.
func (t *Terminal) Printf(format string, v ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, v...)
}

// Position draws board, a FEN or "start".
func (t *Terminal) Position(board string) {
	drawn, fen, err := Draw(board)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		fmt.Fprintf(t.out, "cannot draw board: %v\n", err)
		return
	}
	_ = frame.Execute(t.out, struct {
		Board  string
		Status string
		FEN    string
	}{drawn, Badge(t.status), fen})
}

// SetStatus records the status shown with the next drawing and prints it.
func (t *Terminal) SetStatus(s game.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s
	fmt.Fprintf(t.out, "status: %s\n", Badge(s))
}

// ShowError prints a recoverable submission error.
func (t *Terminal) ShowError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "error: %v\n", err)
}

// ChoosePromotion asks for a piece letter and defaults to a queen.
func (t *Terminal) ChoosePromotion() game.Piece {
	t.Printf("promote to [q]ueen, [r]ook, [b]ishop, k[n]ight (default q): ")
	line, err := t.ReadLine()
	if err != nil {
		return game.Piece{}
	}
	return PieceFor(line)
}

// Confirm asks a yes/no question; only an answer starting with y confirms.
func (t *Terminal) Confirm(prompt string) bool {
	t.Printf("%s [y/N]: ", prompt)
	line, err := t.ReadLine()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(line), "y")
}

// PieceFor maps a user answer to a promotion piece.
func PieceFor(answer string) game.Piece {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return game.Queen
	}
	for _, p := range game.PromotionPieces {
		if answer == p.Code || answer == strings.ToLower(p.Name) {
			return p
		}
	}
	return game.Piece{}
}

// Badge colors a status the way the web page does.
func Badge(s game.Status) string {
	c, ok := badges[s]
	if !ok {
		return string(s)
	}
	return c.Sprintf(" %s ", s)
}

// Draw renders board as text. It returns the FEN that was drawn, empty for
// the start position.
func Draw(board string) (string, string, error) {
	if board == "" || board == game.StartBoard {
		return chess.NewGame().Position().Board().Draw(), "", nil
	}
	opt, err := chess.FEN(board)
	if err != nil {
		return "", "", err
	}
	return chess.NewGame(opt).Position().Board().Draw(), board, nil
}
