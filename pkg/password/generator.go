package password

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
)

// CharacterClass identifies one of the four alphabets a generated password
// must draw from.
type CharacterClass int

const (
	Uppercase CharacterClass = iota
	Lowercase
	Digit
	Special
)

// Ambiguous glyphs (I, O, 0, 1, l, o) are excluded from the alphabets so an
// administrator can read a temporary password aloud without transcription
// errors.
const (
	uppercaseAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowercaseAlphabet = "abcdefghijkmnpqrstuvwxyz"
	digitAlphabet     = "23456789"
	specialAlphabet   = "!@#$%^&*-_=+?"

	combinedAlphabet = uppercaseAlphabet + lowercaseAlphabet + digitAlphabet + specialAlphabet
)

// MinLength is the shortest password Generate will produce.
const MinLength = 8

// maxGenerateAttempts bounds the self-check retry loop in Generate.
const maxGenerateAttempts = 5

var allClasses = []CharacterClass{Uppercase, Lowercase, Digit, Special}

// Alphabet returns the characters that belong to the class.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Uppercase:
		return uppercaseAlphabet
	case Lowercase:
		return lowercaseAlphabet
	case Digit:
		return digitAlphabet
	case Special:
		return specialAlphabet
	default:
		return ""
	}
}

func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Generator produces random passwords that always contain at least one
// character from each CharacterClass.
type Generator struct {
	random  io.Reader
	checker PolicyChecker
}

// GeneratorOption is a functional option for configuring a Generator
type GeneratorOption func(*Generator)

// WithRandom sets the random source; tests inject a deterministic reader here.
func WithRandom(r io.Reader) GeneratorOption {
	return func(g *Generator) {
		g.random = r
	}
}

// WithPolicyChecker sets the checker used for the post-generation self-check
func WithPolicyChecker(checker PolicyChecker) GeneratorOption {
	return func(g *Generator) {
		g.checker = checker
	}
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		random:  rand.Reader,
		checker: NewDefaultPolicyChecker(nil),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns a random password of exactly the requested length,
// guaranteed to contain at least one character from each of the four
// character classes. length must be at least MinLength.
func (g *Generator) Generate(length int) (string, error) {
	if length < MinLength {
		return "", errors.Newf(errors.ErrCodeInvalidInput, "password length must be at least %d, got %d", MinLength, length)
	}

	// By construction the result always satisfies the checker; the retry loop
	// guards against an implementation mistake without looping forever.
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		generated, err := g.generate(length)
		if err != nil {
			return "", err
		}
		if g.checker.IsComplex(generated) {
			return generated, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeGenerationExhausted, "generated password failed complexity self-check %d times", maxGenerateAttempts)
}

func (g *Generator) generate(length int) (string, error) {
	buf := make([]byte, length)

	// One guaranteed character per class; their positions are randomized by
	// the shuffle below.
	for i, class := range allClasses {
		ch, err := g.pick(class.Alphabet())
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}

	for i := len(allClasses); i < length; i++ {
		ch, err := g.pick(combinedAlphabet)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}

	// Fisher-Yates shuffle
	for i := length - 1; i > 0; i-- {
		j, err := g.randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func (g *Generator) pick(alphabet string) (byte, error) {
	idx, err := g.randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[idx], nil
}

// randomIndex returns a uniform index in [0, n). A plain modulo reduction of a
// 32-bit draw is slightly biased when n does not divide 2^32, so draws in the
// biased tail are rejected and retried.
func (g *Generator) randomIndex(n int) (int, error) {
	limit := (uint64(1) << 32) - ((uint64(1) << 32) % uint64(n))

	var b [4]byte
	for {
		if _, err := io.ReadFull(g.random, b[:]); err != nil {
			return 0, fmt.Errorf("failed to read random bytes: %w", err)
		}
		v := uint64(binary.BigEndian.Uint32(b[:]))
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}
