package demo

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
)

//go:embed constructor.go
var constructorSource []byte

func constructorDemos() []Demo {
	return []Demo{
		{
			Name:        "from-values",
			Group:       GroupConstructor,
			Description: "stream of mixed literal values",
			Run:         fromValues,
		},
		{
			Name:        "from-array",
			Group:       GroupConstructor,
			Description: "stream over an int slice",
			Run:         fromArray,
		},
		{
			Name:        "from-file",
			Group:       GroupConstructor,
			Description: "stream of the lines of a file",
			Run:         fromFile,
		},
		{
			Name:        "from-function",
			Group:       GroupConstructor,
			Description: "infinite generated streams cut with limit",
			Run:         fromFunction,
		},
	}
}

func fromValues(ctx context.Context, env *Env) error {
	return stream.Of[any](1, 2, 3, "a", "b").ForEach(ctx, func(v any) {
		env.println(v)
	})
}

func fromArray(ctx context.Context, env *Env) error {
	numbers := []int{1, 2, 3, 4, 5}
	return stream.FromSlice(numbers).ForEach(ctx, func(n int) {
		env.println(n)
	})
}

func fromFile(ctx context.Context, env *Env) error {
	lines := stream.Lines(bytes.NewReader(constructorSource))
	if env.SourceFile != "" {
		lines = stream.FromFile(env.SourceFile)
	}
	return lines.ForEach(ctx, func(line string) {
		env.println(line)
	})
}

func fromFunction(ctx context.Context, env *Env) error {
	err := stream.Floats().Limit(10).ForEach(ctx, func(f float64) {
		env.println(f)
	})
	if err != nil {
		return err
	}

	return stream.Ints(0, 100).Limit(10).ForEach(ctx, func(n int) {
		env.println(n)
	})
}
