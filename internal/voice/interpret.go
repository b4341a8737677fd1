package voice

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// InterpreterConfig configures the text interpretation tables. Zero values
// fall back to the defaults.
type InterpreterConfig struct {
	JokeToken     string
	JokeReply     string
	Substitutions []Substitution
	Commands      map[string]string
}

// Interpreter turns a transcript into a number or a command.
type Interpreter struct {
	jokeToken string
	jokeReply string
	words     []Substitution
	commands  map[string]string
	logger    *zap.Logger
}

// NewInterpreter creates an interpreter. logger may be nil.
func NewInterpreter(cfg InterpreterConfig, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	it := &Interpreter{
		jokeToken: cfg.JokeToken,
		jokeReply: cfg.JokeReply,
		words:     cfg.Substitutions,
		commands:  make(map[string]string),
		logger:    logger,
	}
	if it.jokeToken == "" {
		it.jokeToken, it.jokeReply = DefaultJokeToken, DefaultJokeReply
	}
	if it.words == nil {
		it.words = DefaultSubstitutions()
	}
	commands := cfg.Commands
	if commands == nil {
		commands = DefaultCommands()
	}
	for phrase, cmd := range commands {
		it.commands[Normalize(phrase)] = cmd
	}
	return it
}

// Normalize lower-cases text and collapses runs of whitespace to one space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ToNumber applies the substitution table, turns the remaining gaps
// between words into decimal points and parses the result.
func (it *Interpreter) ToNumber(text string) (float64, bool) {
	digits := text
	for _, s := range it.words {
		digits = strings.ReplaceAll(digits, s.From, s.To)
	}
	digits = strings.Join(strings.Fields(digits), ".")
	if !plainDecimal(digits) {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// plainDecimal reports whether s is ASCII digits with at most one '.'.
// ParseFloat alone would also take signs, exponents, hex and underscores.
func plainDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Interpret classifies one transcript. ok is false when the text is empty
// or neither a number nor a known command; such utterances are dropped.
func (it *Interpreter) Interpret(text string) (r Result, ok bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return Result{}, false
	}
	if normalized == it.jokeToken {
		return Result{Value: it.jokeReply, IsCommand: true}, true
	}
	if v, ok := it.ToNumber(normalized); ok {
		return Result{Value: strconv.FormatFloat(v, 'f', -1, 64)}, true
	}
	if cmd, ok := it.commands[normalized]; ok {
		return Result{Value: cmd, IsCommand: true}, true
	}
	it.logger.Debug("utterance not understood", zap.String("text", normalized))
	return Result{}, false
}
