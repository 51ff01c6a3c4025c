package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"vindinium/bot"
	"vindinium/communication/client"
	"vindinium/communication/server"
	"vindinium/config"
	"vindinium/engine"
	"vindinium/experiments"
	"vindinium/gamemaster"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	modeRemote     = "remote"
	modeServe      = "serve"
	modeLocal      = "local"
	modeTournament = "tournament"
)

func main() {
	envFile := flag.String("env", ".env", "settings file, skipped when missing")
	mode := flag.String("mode", modeRemote, "remote, serve, local or tournament")
	games := flag.Int("games", experiments.NumGames, "games per line-up in tournament mode")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(settings.Debug)

	tuning, err := config.LoadTuning(settings.TuningFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tuning")
	}
	if settings.Depth > 0 {
		tuning.Minimax.Depth = settings.Depth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case modeRemote:
		err = runRemote(ctx, settings, tuning)
	case modeServe:
		cfg := server.DefaultConfig()
		cfg.Tuning = tuning
		if settings.HeroName != "" {
			cfg.PlayerName = settings.HeroName
		}
		err = server.New(cfg).ListenAndServe(ctx, settings.ListenAddr)
	case modeLocal:
		err = runLocal(ctx, settings, tuning)
	case modeTournament:
		_, err = experiments.Tournament{
			Name:    "default",
			Lineups: experiments.DefaultLineups(settings.Map, settings.Turns*gamemaster.Heroes),
			Games:   *games,
			Tuning:  tuning,
			Seed:    uint64(time.Now().UnixNano()),
		}.Run(ctx)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func runRemote(ctx context.Context, settings config.Settings, tuning config.Tuning) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.Log()

	b, err := bot.New(settings.Bot, tuning, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}
	viewURL, err := engine.NewRemote(client.New(settings), b).Run(ctx)
	if viewURL != "" {
		fmt.Println(viewURL)
		if settings.OpenBrowser {
			openBrowser(viewURL)
		}
	}
	return err
}

// runLocal plays the configured bot against the default opponents without a
// server.
func runLocal(ctx context.Context, settings config.Settings, tuning config.Tuning) error {
	kinds := append([]string{settings.Bot}, server.DefaultConfig().Bots...)
	names := append([]string{settings.DisplayName()}, kinds[1:]...)
	g, err := gamemaster.NewLocal(uuid.NewString(), settings.Map, names, settings.Turns*gamemaster.Heroes)
	if err != nil {
		return err
	}
	seed := uint64(time.Now().UnixNano())
	bots := make([]bot.Bot, len(kinds))
	for i, kind := range kinds {
		if bots[i], err = bot.New(kind, tuning, seed+uint64(i)); err != nil {
			return err
		}
	}
	e, err := engine.NewLocal(g, bots, names)
	if err != nil {
		return err
	}
	winner, gm, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(g.State(0).Game.ID, "winner:", winner, "gold:", gm.Gold)
	return nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Warn().Err(err).Msg("failed to open browser")
	}
}
