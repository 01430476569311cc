package game

// Stats holds the scalar game state: lives, score, level, whether a game is
// in progress, and the best score seen so far.
type Stats struct {
	LivesLeft int
	Score     int
	Level     int
	Active    bool
	HighScore int
}

// NewStats creates inactive stats with a loaded high score.
func NewStats(lives, highScore int) Stats {
	return Stats{
		LivesLeft: lives,
		Level:     1,
		HighScore: highScore,
	}
}

// Reset prepares the stats for a new game. The high score is kept.
func (s *Stats) Reset(lives int) {
	s.LivesLeft = lives
	s.Score = 0
	s.Level = 1
}

// AddKills credits n destroyed enemies worth points each.
func (s *Stats) AddKills(n, points int) {
	s.Score += n * points
}

// CheckHighScore raises the high score to the current score if it is higher.
// Returns true if the high score changed.
func (s *Stats) CheckHighScore() bool {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		return true
	}
	return false
}
