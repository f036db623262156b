package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"boardclient/internal/config"
	"boardclient/internal/game"
	"boardclient/internal/logging"
	"boardclient/internal/remote"
	"boardclient/internal/storage"
	"boardclient/internal/view"
)

func main() {
	fs := pflag.NewFlagSet("boardclient", pflag.ExitOnError)
	config.Flags(fs)
	showVersion := fs.Bool("version", false, "print version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(versionString())
		return
	}

	cfg, err := config.Setup(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logging.Sync()

	models, err := config.NewModelChoice(cfg.Models, cfg.Model)
	if err != nil {
		logging.Errorf("%v", err)
		os.Exit(2)
	}

	term := view.NewTerminal(os.Stdin, os.Stdout)
	opts := []game.Option{
		game.WithPromoter(term),
		game.WithModels(models),
		game.WithTimeout(cfg.RequestTimeout),
	}

	var store *storage.Store
	if cfg.JournalDSN != "" {
		db, err := storage.New(cfg.JournalDSN)
		if err != nil {
			logging.Errorf("journal: %v", err)
			os.Exit(1)
		}
		store = storage.NewStore(db)
		if err := store.StartSession(context.Background(), cfg.MoveURL, models.Model(), time.Now()); err != nil {
			logging.Warnf("journal session: %v", err)
		}
		opts = append(opts, game.WithJournal(store))
	}

	client := remote.NewClient(cfg.CSRFToken, userAgent())
	ctrl := game.NewController(client, term, game.Endpoints{
		Move:  cfg.MoveURL,
		Reset: cfg.ResetURL,
		Undo:  cfg.UndoURL,
	}, opts...)

	logging.Infof("%s talking to %s", versionString(), cfg.MoveURL)

	s := &session{ctrl: ctrl, term: term, models: models, store: store}
	s.run()

	_ = ctrl.Close()
	if err := store.EndSession(context.Background(), time.Now()); err != nil {
		logging.Warnf("journal session: %v", err)
	}
}
