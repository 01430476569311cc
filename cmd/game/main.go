package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/platform"
	"github.com/tomz197/invaders/internal/score"
)

func main() {
	os.Exit(run())
}

// run plays one session and returns the process exit code. Deferred cleanup
// runs before main exits.
func run() int {
	configPath := flag.String("config", "", "YAML settings file (defaults are built in)")
	highScorePath := flag.String("highscore", config.GetEnv("INVADERS_HIGHSCORE", "high_score.txt"), "high score file")
	historyPath := flag.String("history", "", "CSV file to append finished games to")
	mute := flag.Bool("mute", config.GetEnvBool("INVADERS_MUTE", false), "disable sound")
	logPath := flag.String("log", config.GetEnv("INVADERS_LOG", filepath.Join(os.TempDir(), "invaders.log")), "log file")
	dumpConfig := flag.String("dump-config", "", "write the effective settings to this file and exit")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		return 1
	}
	if *dumpConfig != "" {
		if err := settings.WriteYAML(*dumpConfig); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	// The terminal belongs to the game, so logs go to a file
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true, Prefix: "invaders"})

	var player platform.Audio = audio.Silent{}
	if !*mute {
		p, closeAudio, err := audio.Open(settings.Audio, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load sounds: %v\n", err)
			return 1
		}
		defer closeAudio()
		player = p
	}

	var history score.Recorder
	if *historyPath != "" {
		history = score.NewHistory(*historyPath)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	runErr := loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Settings: settings,
		Scores:   score.NewFileStore(*highScorePath),
		History:  history,
		Audio:    player,
		Logger:   logger,
	})
	stop()
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Error("game error", "err", runErr)
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		return 1
	}
	return 0
}
