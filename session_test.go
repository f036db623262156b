package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"boardclient/internal/config"
	"boardclient/internal/game"
	"boardclient/internal/remote"
	"boardclient/internal/view"
)

const (
	promoBoard = "8/4P3/8/8/8/8/k7/4K3 w - - 0 1"
	afterPromo = "4Q3/8/8/8/8/8/k7/4K3 b - - 0 1"
)

type authority struct {
	mu       sync.Mutex
	requests []game.Request
}

func (a *authority) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reset_game/", func(w http.ResponseWriter, r *http.Request) {
		a.record(r)
		_, _ = w.Write([]byte(`{"legal_moves":"e7e8,e1d1","promotions":"e7e8","curr_board":"` + promoBoard + `","is_game_over":false,"is_check":false}`))
	})
	mux.HandleFunc("/play_step/", func(w http.ResponseWriter, r *http.Request) {
		a.record(r)
		_, _ = w.Write([]byte(`{"legal_moves":"","promotions":"","curr_board":"` + afterPromo + `","is_game_over":true,"is_check":false}`))
	})
	return mux
}

func (a *authority) record(r *http.Request) {
	var req game.Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	a.mu.Lock()
	a.requests = append(a.requests, req)
	a.mu.Unlock()
}

func TestSessionPlaysPromotion(t *testing.T) {
	color.NoColor = true
	a := &authority{}
	srv := httptest.NewServer(a.handler())
	defer srv.Close()

	var out bytes.Buffer
	term := view.NewTerminal(strings.NewReader("model minimax\ne7 e8\nq\ny\nstatus\nquit\n"), &out)
	models, err := config.NewModelChoice(config.DefaultModels, "random")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	ctrl := game.NewController(remote.NewClient("tok", userAgent()), term, game.Endpoints{
		Move:  srv.URL + "/play_step/",
		Reset: srv.URL + "/reset_game/",
	}, game.WithPromoter(term), game.WithModels(models))
	defer ctrl.Close()

	s := &session{ctrl: ctrl, term: term, models: models}
	s.run()

	if len(a.requests) != 2 {
		t.Fatalf("expected reset and move, got %d requests", len(a.requests))
	}
	if a.requests[0].Move != nil || a.requests[0].Model != "random" {
		t.Fatalf("unexpected reset request %+v", a.requests[0])
	}
	mv := a.requests[1]
	if mv.Move == nil || *mv.Move != "e7e8q" || mv.Model != "minimax" || mv.CurrentBoard != promoBoard {
		t.Fatalf("unexpected move request %+v", mv)
	}
	if st := ctrl.State(); st.Status() != game.StatusGameOver || st.CurrentBoard != afterPromo {
		t.Fatalf("unexpected final state %+v", st)
	}
	if !strings.Contains(out.String(), "Promote pawn to Queen?") {
		t.Fatalf("promotion prompt missing:\n%s", out.String())
	}
}

func TestSessionRejectsAndReports(t *testing.T) {
	color.NoColor = true
	a := &authority{}
	srv := httptest.NewServer(a.handler())
	defer srv.Close()

	var out bytes.Buffer
	term := view.NewTerminal(strings.NewReader("e1e3\nundo\nmodel deep-blue\nhistory\nfoo\n"), &out)
	models, _ := config.NewModelChoice(config.DefaultModels, "random")
	ctrl := game.NewController(remote.NewClient("", ""), term, game.Endpoints{
		Move:  srv.URL + "/play_step/",
		Reset: srv.URL + "/reset_game/",
	}, game.WithModels(models))
	defer ctrl.Close()

	s := &session{ctrl: ctrl, term: term, models: models}
	s.run()

	got := out.String()
	for _, want := range []string{"snapback", "undo unavailable", "unknown model", "journal disabled", `unknown command "foo"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if len(a.requests) != 1 {
		t.Fatalf("expected only the initial reset, got %d requests", len(a.requests))
	}
}

func TestParseDrop(t *testing.T) {
	cases := []struct {
		in       string
		src, dst string
		ok       bool
	}{
		{"e2e4", "e2", "e4", true},
		{"e2 e4", "e2", "e4", true},
		{"e7e8q", "", "", false},
		{"i2e4", "", "", false},
		{"e2 e4 e5", "", "", false},
	}
	for _, tc := range cases {
		src, dst, ok := parseDrop(strings.Fields(tc.in))
		if diff := cmp.Diff([]any{tc.src, tc.dst, tc.ok}, []any{src, dst, ok}); diff != "" {
			t.Fatalf("parseDrop(%q) (-want +got):\n%s", tc.in, diff)
		}
	}
}
