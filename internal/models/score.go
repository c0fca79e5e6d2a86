package models

// Score records the outcome of a decided game: how many incorrect guesses the
// player spent before the game ended. Scores are immutable once created and
// are never produced for cancelled games.
type Score struct {
	Key              string `json:"key,omitempty"`
	Game             string `json:"game"`
	User             string `json:"user"`
	IncorrectGuesses int    `json:"incorrectGuesses"`
}
