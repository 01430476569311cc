package main

import (
	_ "embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/score"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultHighScore = "/app/data/high_score.txt"
	topScores        = 10
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// pageData is what the landing page shows.
type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore string
	Top       []topEntry
}

type topEntry struct {
	Rank  int
	Score string
	Level int
	Date  string
}

// landing serves the page from the shared score files.
type landing struct {
	sshHost string
	sshPort string
	scores  score.Store
	history *score.History // nil when no history file is configured
	printer *message.Printer
	logger  *log.Logger
}

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "22")
	highScorePath := config.GetEnv("INVADERS_HIGHSCORE", defaultHighScore)
	historyPath := config.GetEnv("INVADERS_HISTORY", "")

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	l := &landing{
		sshHost: sshHost,
		sshPort: sshPort,
		scores:  score.NewFileStore(highScorePath),
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
	if historyPath != "" {
		l.history = score.NewHistory(historyPath)
	}

	mux := http.NewServeMux()
	mux.Handle("/", l)

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

func (l *landing) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, l.data()); err != nil {
		l.logger.Error("rendering page", "err", err)
	}
}

// data collects the page values. Score file errors degrade to empty values.
func (l *landing) data() pageData {
	d := pageData{SSHHost: l.sshHost, SSHPort: l.sshPort}

	high, err := l.scores.Load()
	if err != nil {
		l.logger.Warn("loading high score", "err", err)
	}
	d.HighScore = l.printer.Sprintf("%d", high)

	if l.history == nil {
		return d
	}
	records, err := l.history.Load()
	if err != nil {
		l.logger.Warn("loading history", "err", err)
		return d
	}
	for i, rec := range score.Top(records, topScores) {
		date := rec.FinishedAt
		if t, err := time.Parse(time.RFC3339, rec.FinishedAt); err == nil {
			date = t.Format("2006-01-02")
		}
		d.Top = append(d.Top, topEntry{
			Rank:  i + 1,
			Score: l.printer.Sprintf("%d", rec.Score),
			Level: rec.Level,
			Date:  date,
		})
	}
	return d
}
