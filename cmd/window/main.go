package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/platform"
	"github.com/tomz197/invaders/internal/score"
	"github.com/tomz197/invaders/internal/window"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML settings file (defaults are built in)")
	highScorePath := flag.String("highscore", config.GetEnv("INVADERS_HIGHSCORE", "high_score.txt"), "high score file")
	historyPath := flag.String("history", "", "CSV file to append finished games to")
	mute := flag.Bool("mute", config.GetEnvBool("INVADERS_MUTE", false), "disable sound")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "invaders"})

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load settings", "err", err)
		return 1
	}

	var player platform.Audio = audio.Silent{}
	if !*mute {
		p, closeAudio, err := audio.Open(settings.Audio, logger)
		if err != nil {
			logger.Error("failed to load sounds", "err", err)
			return 1
		}
		defer closeAudio()
		player = p
	}

	var history score.Recorder
	if *historyPath != "" {
		history = score.NewHistory(*historyPath)
	}

	err = window.Run(window.Options{
		Settings: settings,
		Scores:   score.NewFileStore(*highScorePath),
		History:  history,
		Audio:    player,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("game error", "err", err)
		return 1
	}
	return 0
}
