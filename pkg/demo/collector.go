package demo

import (
	"context"
	"strconv"

	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
)

// partitionNames mixes Latin and non-Latin first letters.
var partitionNames = []string{"abc", "lili", "wangwu", "李四", "张三"}

func collectorDemos() []Demo {
	return []Demo{
		{Name: "to-list", Group: GroupCollector, Description: "collect items with total above 1000", Run: toList},
		{Name: "group", Group: GroupCollector, Description: "group items by category", Run: groupByCategory},
		{Name: "partition", Group: GroupCollector, Description: "partition items and names by a predicate", Run: partition},
	}
}

func toList(ctx context.Context, env *Env) error {
	items, err := env.cart("to-list").Filter(catalog.TotalPriceAbove(1000)).ToSlice(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []catalog.CartItem{}
	}
	return env.printIndented(items)
}

func groupByCategory(ctx context.Context, env *Env) error {
	groups, err := stream.GroupBy(ctx, env.cart("group"), func(item catalog.CartItem) catalog.Category {
		return item.Category
	})
	if err != nil {
		return err
	}
	return env.printIndented(groups)
}

func partition(ctx context.Context, env *Env) error {
	parts, err := stream.PartitionBy(ctx, env.cart("partition"), catalog.TotalPriceAbove(1000))
	if err != nil {
		return err
	}

	// JSON object keys must be strings.
	byKey := make(map[string][]catalog.CartItem, len(parts))
	for k, v := range parts {
		byKey[strconv.FormatBool(k)] = v
	}
	if err := env.printIndented(byKey); err != nil {
		return err
	}

	names, err := stream.PartitionBy(ctx, stream.FromSlice(partitionNames), startsWithLatinLetter)
	if err != nil {
		return err
	}

	for _, latin := range []bool{false, true} {
		if latin {
			env.println("Latin-letter names:")
		} else {
			env.println("Other names:")
		}
		for _, name := range names[latin] {
			env.printf("\t%s\n", name)
		}
	}
	return nil
}

// startsWithLatinLetter reports whether s begins with an ASCII letter.
func startsWithLatinLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
