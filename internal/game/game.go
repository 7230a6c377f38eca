package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"quotenest/internal/cli/scheme/colours"
	"quotenest/internal/domain/quote"

	"github.com/sirupsen/logrus"
)

// GuessesPerRound is how many more guesses a player gets after a wrong first
// guess. Each of them comes with a new hint.
const GuessesPerRound = 2

// ErrNoQuotes is returned when the game is started without any quotes.
var ErrNoQuotes = errors.New("no quotes available")

// Narrator reads a quote aloud.
type Narrator interface {
	Speak(text string) error
}

// Game is the interactive "who said it" loop over a dataset.
type Game struct {
	quotes   quote.Dataset
	in       *bufio.Reader
	out      io.Writer
	rng      *rand.Rand
	narrator Narrator
	log      logrus.FieldLogger
}

type Option func(*Game)

// WithNarrator reads every quote aloud before the first guess.
func WithNarrator(n Narrator) Option {
	return func(g *Game) {
		g.narrator = n
	}
}

// WithRand sets the source used to pick quotes.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

func New(quotes quote.Dataset, in io.Reader, out io.Writer, log logrus.FieldLogger, opts ...Option) *Game {
	g := &Game{
		quotes: quotes,
		in:     bufio.NewReader(in),
		out:    out,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run plays rounds until the player declines another one, input ends, or ctx
// is cancelled.
func (g *Game) Run(ctx context.Context) error {
	if g.quotes.Len() == 0 {
		return ErrNoQuotes
	}

	for ctx.Err() == nil {
		if err := g.playRound(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		again, err := g.askPlayAgain()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !again {
			break
		}
	}

	fmt.Fprintln(g.out)
	colours.Warning.Fprintln(g.out, "Thanks for playing the game, goodbye!")
	return nil
}

func (g *Game) playRound() error {
	record := g.quotes.Random(g.rng)
	hints := Hints(record)

	fmt.Fprintln(g.out)
	colours.Title.Fprint(g.out, "I got a quote for you : ")
	colours.Quote.Fprintln(g.out, record.Text)

	if g.narrator != nil {
		if err := g.narrator.Speak(record.Text); err != nil {
			g.log.WithError(err).Warn("Failed to read quote aloud")
		}
	}

	guess, err := g.prompt("Your goal is to guess who wrote this quote. Enter your guess here : ")
	if err != nil {
		return err
	}

	for left := GuessesPerRound; !sameAuthor(guess, record.Author); left-- {
		if left == 0 {
			colours.Error.Fprint(g.out, "You lost :(. The quote was authored by ")
			colours.Author.Fprintln(g.out, record.Author)
			g.log.WithField("author", record.Author).Debug("Round lost")
			return nil
		}

		fmt.Fprintf(g.out, "You have %d guesses left.\n", left)
		colours.Hint.Fprintf(g.out, "Wrong guess! Here's a hint : %s\n", hints[GuessesPerRound-left])

		if guess, err = g.prompt("Your goal is to guess who wrote this quote. Enter your guess here : "); err != nil {
			return err
		}
	}

	colours.Success.Fprintln(g.out, "Well done! You guessed right!")
	g.log.WithField("author", record.Author).Debug("Round won")
	return nil
}

func (g *Game) askPlayAgain() (bool, error) {
	for {
		answer, err := g.prompt("Would you like to play again? (y/n) : ")
		if err != nil {
			return false, err
		}

		switch answer {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		colours.Error.Fprintln(g.out, "Invalid command, please enter 'y' or 'n'.")
	}
}

// prompt prints text and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is returned only once input is exhausted.
func (g *Game) prompt(text string) (string, error) {
	colours.Prompt.Fprint(g.out, text)

	line, err := g.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func sameAuthor(guess, author string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), author)
}
