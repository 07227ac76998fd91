// Package verifycode generates short random verification codes.
package verifycode

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/vnykmshr/rainbow/pkg/common/validation"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
)

const (
	// DefaultAlphabet is the character set codes are drawn from.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the conventional code length.
	DefaultLength = 5
)

// Generator draws codes from a fixed alphabet.
type Generator struct {
	alphabet []rune
	intn     func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithIntn replaces the random index source. intn(n) must return a value in [0, n).
func WithIntn(intn func(n int) int) Option {
	return func(g *Generator) {
		g.intn = intn
	}
}

// New creates a Generator over alphabet.
func New(alphabet string, opts ...Option) (*Generator, error) {
	if err := validation.ValidateNotEmpty("verifycode", "alphabet", alphabet); err != nil {
		return nil, err
	}

	g := &Generator{
		alphabet: []rune(alphabet),
		intn:     rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Code returns a code of n characters. Every index is drawn uniformly from
// [0, len(alphabet)).
func (g *Generator) Code(ctx context.Context, n int) (string, error) {
	if err := validation.ValidatePositive("verifycode", "length", n); err != nil {
		return "", err
	}

	size := len(g.alphabet)
	indices := stream.Generate(func() int { return g.intn(size) }).Limit(int64(n))

	var code strings.Builder
	code.Grow(n)
	err := indices.ForEach(ctx, func(i int) {
		code.WriteRune(g.alphabet[i])
	})
	if err != nil {
		return "", err
	}
	return code.String(), nil
}

var defaultGenerator = &Generator{alphabet: []rune(DefaultAlphabet), intn: rand.IntN}

// Code returns a code of n characters from DefaultAlphabet.
func Code(ctx context.Context, n int) (string, error) {
	return defaultGenerator.Code(ctx, n)
}
