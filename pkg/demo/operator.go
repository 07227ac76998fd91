package demo

import (
	"cmp"
	"context"
	"strings"

	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
	"github.com/vnykmshr/rainbow/pkg/verifycode"
)

// pageSize is the number of items per page in the pagination demo.
const pageSize = 3

var byTotalDesc = catalog.Descending(catalog.ByTotalPrice)

func operatorDemos() []Demo {
	return []Demo{
		{Name: "filter", Group: GroupOperator, Description: "keep only books", Run: filterBooks},
		{Name: "map", Group: GroupOperator, Description: "map items to their names", Run: mapNames},
		{Name: "flat-map", Group: GroupOperator, Description: "flatten names into characters", Run: flatMapChars},
		{Name: "peek", Group: GroupOperator, Description: "observe items as they pass", Run: peekNames},
		{Name: "distinct", Group: GroupOperator, Description: "distinct categories", Run: distinctCategories},
		{Name: "sorted", Group: GroupOperator, Description: "sort by total price, descending", Run: sortedByTotal},
		{Name: "skip", Group: GroupOperator, Description: "skip the three most expensive items", Run: skipThree},
		{Name: "limit", Group: GroupOperator, Description: "the three most expensive items", Run: limitThree},
		{Name: "page", Group: GroupOperator, Description: "paginate with skip and limit", Run: paginate},
		{Name: "all-match", Group: GroupOperator, Description: "every total above 100?", Run: allMatch},
		{Name: "any-match", Group: GroupOperator, Description: "any total below 2000?", Run: anyMatch},
		{Name: "none-match", Group: GroupOperator, Description: "no total above 3000?", Run: noneMatch},
		{Name: "find-first", Group: GroupOperator, Description: "first item of the cart", Run: findFirst},
		{Name: "find-any", Group: GroupOperator, Description: "any item of the cart", Run: findAny},
		{Name: "max", Group: GroupOperator, Description: "highest total price", Run: maxTotal},
		{Name: "min", Group: GroupOperator, Description: "lowest total price", Run: minTotal},
		{Name: "count", Group: GroupOperator, Description: "number of cart items", Run: countItems},
		{Name: "random-ints", Group: GroupOperator, Description: "ten random ints in [0, 100)", Run: randomInts},
		{Name: "verify-code", Group: GroupOperator, Description: "five-character verification code", Run: verifyCode},
	}
}

func filterBooks(ctx context.Context, env *Env) error {
	return forEachJSON(ctx, env, env.cart("filter").Filter(catalog.InCategory(catalog.Books)))
}

func mapNames(ctx context.Context, env *Env) error {
	names := stream.Map(env.cart("map"), func(item catalog.CartItem) string { return item.Name })
	return forEachJSON(ctx, env, names)
}

func flatMapChars(ctx context.Context, env *Env) error {
	chars := stream.FlatMap(env.cart("flat-map"), func(item catalog.CartItem) stream.Stream[string] {
		return stream.FromSlice(strings.Split(item.Name, ""))
	})
	return forEachJSON(ctx, env, chars)
}

func peekNames(ctx context.Context, env *Env) error {
	peeked := env.cart("peek").Peek(func(item catalog.CartItem) {
		env.println(item.Name)
	})
	return forEachJSON(ctx, env, peeked)
}

func distinctCategories(ctx context.Context, env *Env) error {
	categories := stream.Map(env.cart("distinct"), func(item catalog.CartItem) catalog.Category { return item.Category })
	return forEachJSON(ctx, env, categories.Distinct())
}

func sortedByTotal(ctx context.Context, env *Env) error {
	return forEachJSON(ctx, env, env.cart("sorted").Sorted(byTotalDesc))
}

func skipThree(ctx context.Context, env *Env) error {
	items, err := env.cart("skip").Sorted(byTotalDesc).Skip(3).ToSlice(ctx)
	if err != nil {
		return err
	}
	return printEachIndented(env, items)
}

func limitThree(ctx context.Context, env *Env) error {
	items, err := env.cart("limit").Sorted(byTotalDesc).Limit(3).ToSlice(ctx)
	if err != nil {
		return err
	}
	return printEachIndented(env, items)
}

func printEachIndented(env *Env, items []catalog.CartItem) error {
	for _, item := range items {
		if err := env.printIndented(item); err != nil {
			return err
		}
	}
	return nil
}

func paginate(ctx context.Context, env *Env) error {
	for page := int64(0); ; page++ {
		names := stream.Map(
			env.cart("page").Sorted(byTotalDesc).Skip(page*pageSize).Limit(pageSize),
			func(item catalog.CartItem) string { return item.Name },
		)
		line, err := stream.Joining(ctx, names, ", ")
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		env.printf("page %d: %s\n", page+1, line)
	}
}

// peekJSON prints every item that reaches the terminal operation.
func peekJSON(env *Env, s stream.Stream[catalog.CartItem]) stream.Stream[catalog.CartItem] {
	return s.Peek(func(item catalog.CartItem) {
		_ = env.printJSON(item)
	})
}

func allMatch(ctx context.Context, env *Env) error {
	match, err := peekJSON(env, env.cart("all-match")).AllMatch(ctx, catalog.TotalPriceAbove(100))
	if err != nil {
		return err
	}
	env.println(match)
	return nil
}

func anyMatch(ctx context.Context, env *Env) error {
	match, err := peekJSON(env, env.cart("any-match")).AnyMatch(ctx, func(item catalog.CartItem) bool {
		return item.TotalPrice < 2000
	})
	if err != nil {
		return err
	}
	env.println(match)
	return nil
}

func noneMatch(ctx context.Context, env *Env) error {
	match, err := peekJSON(env, env.cart("none-match")).NoneMatch(ctx, catalog.TotalPriceAbove(3000))
	if err != nil {
		return err
	}
	env.println(match)
	return nil
}

func findFirst(ctx context.Context, env *Env) error {
	return printFound(env)(peekJSON(env, env.cart("find-first")).FindFirst(ctx))
}

func findAny(ctx context.Context, env *Env) error {
	return printFound(env)(peekJSON(env, env.cart("find-any")).FindAny(ctx))
}

func printFound(env *Env) func(catalog.CartItem, bool, error) error {
	return func(item catalog.CartItem, found bool, err error) error {
		if err != nil {
			return err
		}
		if !found {
			env.println("not found")
			return nil
		}
		return env.printIndented(item)
	}
}

func totals(env *Env, name string) stream.Stream[float64] {
	return stream.Map(env.cart(name), func(item catalog.CartItem) float64 { return item.TotalPrice })
}

func maxTotal(ctx context.Context, env *Env) error {
	return printExtreme(env)(totals(env, "max").Max(ctx, cmp.Compare[float64]))
}

func minTotal(ctx context.Context, env *Env) error {
	return printExtreme(env)(totals(env, "min").Min(ctx, cmp.Compare[float64]))
}

func printExtreme(env *Env) func(float64, bool, error) error {
	return func(v float64, found bool, err error) error {
		if err != nil {
			return err
		}
		if !found {
			env.println("empty cart")
			return nil
		}
		env.println(v)
		return nil
	}
}

func countItems(ctx context.Context, env *Env) error {
	count, err := env.cart("count").Count(ctx)
	if err != nil {
		return err
	}
	env.println(count)
	return nil
}

func randomInts(ctx context.Context, env *Env) error {
	return stream.Ints(0, 100).Limit(10).ForEach(ctx, func(n int) {
		env.println(n)
	})
}

func verifyCode(ctx context.Context, env *Env) error {
	code, err := verifycode.Code(ctx, verifycode.DefaultLength)
	if err != nil {
		return err
	}
	env.println(code)
	return nil
}
