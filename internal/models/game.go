package models

import (
	"strings"
	"time"
)

// Game represents a single hangman game. The word is stored uppercase; it must
// be masked before the game leaves the service (see Mask).
type Game struct {
	Key       string     `json:"key,omitempty"`
	Word      string     `json:"word"`
	User      string     `json:"user"`
	Start     time.Time  `json:"start"`
	LastMove  *time.Time `json:"lastMove"`
	End       *time.Time `json:"end"`
	Cancelled bool       `json:"cancelled"`
	Guesses   []string   `json:"guesses"`
}

// Active reports whether the game can still accept guesses. A game is active
// until it is won, lost, or cancelled.
func (g *Game) Active() bool {
	return !g.Cancelled && g.End == nil
}

// IncorrectGuesses returns the guesses that appear nowhere in the word. A
// wrong whole-word guess counts as incorrect like any other token.
func (g *Game) IncorrectGuesses() []string {
	word := strings.ToUpper(g.Word)
	var incorrect []string
	for _, guess := range g.Guesses {
		if !strings.Contains(word, strings.ToUpper(guess)) {
			incorrect = append(incorrect, guess)
		}
	}
	return incorrect
}

// History replays the guess sequence and returns [guess, maskedStateAfter]
// pairs. Replay stops at the first winning state; guesses recorded after a win
// carry no information.
func (g *Game) History() [][2]string {
	word := strings.ToUpper(g.Word)
	history := make([][2]string, 0, len(g.Guesses))
	var running []string
	for _, guess := range g.Guesses {
		running = append(running, guess)
		state := ApplyGuesses(g.Word, running)
		history = append(history, [2]string{guess, state})
		if state == word {
			break
		}
	}
	return history
}

// IdleTime returns the whole hours since the most recent move, or since the
// start of the game when no guess has been made yet.
func (g *Game) IdleTime(now time.Time) int {
	mostRecent := g.Start
	if g.LastMove != nil {
		mostRecent = *g.LastMove
	}
	return int(now.Sub(mostRecent).Hours())
}

// GuessList returns the guesses joined by commas, for display.
func (g *Game) GuessList() string {
	return strings.Join(g.Guesses, ", ")
}

// Mask replaces the secret word with its masked representation. Returns g for
// chaining into a response.
func (g *Game) Mask() *Game {
	g.Word = ApplyGuesses(g.Word, g.Guesses)
	return g
}

// Finish marks the game terminal at t. Calling Finish on an already finished
// game leaves it unchanged.
func (g *Game) Finish(t time.Time) *Game {
	if g.End == nil {
		g.End = &t
		g.LastMove = &t
	}
	return g
}

// Cancel cancels an active game. Reports whether the game was cancelled;
// finished or already cancelled games are left untouched.
func (g *Game) Cancel() bool {
	if !g.Active() {
		return false
	}
	g.Cancelled = true
	return true
}

// ApplyGuesses computes the revealed representation of word under the given
// guesses. A guess matching the whole word reveals it immediately; otherwise
// each letter is revealed iff it was guessed as a single-letter token.
// Comparison is case-insensitive; the result is uppercase.
func ApplyGuesses(word string, guesses []string) string {
	word = strings.ToUpper(word)
	upper := make([]string, len(guesses))
	for i, guess := range guesses {
		upper[i] = strings.ToUpper(guess)
	}

	for _, guess := range upper {
		if guess == word {
			return word
		}
	}

	var masked strings.Builder
	for _, c := range word {
		letter := string(c)
		guessed := false
		for _, guess := range upper {
			if guess == letter {
				guessed = true
				break
			}
		}
		if guessed {
			masked.WriteString(letter)
		} else {
			masked.WriteByte('_')
		}
	}
	return masked.String()
}
