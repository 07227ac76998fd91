/*
Package rainbow demonstrates lazy, context-aware streams over a shopping cart.

Streaming (pkg/streaming):
  - stream: Lazy pipelines with sources, operations and collectors
  - writer: Async buffered writing shared by concurrent demonstrations

Task Scheduling (pkg/scheduling):
  - workerpool: Runs demonstrations side by side
  - scheduler: Reruns them on a cron or interval schedule

Demonstrations (pkg/demo) cover stream constructors, operators and
collectors over the fixture cart in pkg/catalog. The rainbow command runs
them:

	rainbow -list
	rainbow -group operator
	rainbow -run count,max,partition
	rainbow -run verify-code -schedule "@every 10s"

Library usage:

	import "github.com/vnykmshr/rainbow/pkg/streaming/stream"

	names, err := stream.Map(
		stream.FromSlice(catalog.SampleItems()).Filter(catalog.TotalPriceAbove(1000)),
		func(it catalog.CartItem) string { return it.Name },
	).ToSlice(ctx)
*/
package rainbow
