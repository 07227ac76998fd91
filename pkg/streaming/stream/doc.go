/*
Package stream provides a lazy, context-aware API for processing sequences of data in Go.

The API mirrors Java 8 Streams: sources produce elements, intermediate operations
describe a pipeline, and a terminal operation runs it once.

Core Concepts:

A Stream represents a sequence of elements supporting sequential operations. Streams are:
  - Lazy: computation is only performed when a terminal operation is initiated
  - Immutable: operations return new streams rather than modifying existing ones
  - Context-aware: all terminal operations respect context cancellation and timeouts
  - Single-use: a terminal operation closes the stream; reusing it returns ErrStreamClosed

Execution is demand-driven: the terminal operation asks the last stage for an
element, which asks the stage before it, down to the source. No stage reads
ahead, so a Peek placed before a short-circuiting terminal such as FindFirst
or AllMatch sees exactly the elements the terminal examines, and Limit never
pulls more than its bound from upstream. Terminal operations run on the
caller's goroutine and close the stream before returning, which also closes
any inner stream FlatMap left open.

Distinct hashes elements by their dynamic value. An element whose dynamic
type is not comparable makes the terminal operation return an error.

Stream Creation:

	stream.FromSlice([]string{"a", "b", "c"})
	stream.Of[any](1, 2, 3, "a", "b")
	stream.FromChannel(ch)
	stream.FromSeq(maps.Keys(m))
	stream.Range(0, 10)
	stream.Generate(rand.Float64)          // infinite
	stream.Iterate(1, func(x int) int { return x * 2 }) // infinite
	stream.Ints(0, 100)                    // infinite random ints in [0, 100)
	stream.Lines(os.Stdin)
	stream.FromFile("main.go")             // errors surface at the terminal
	stream.Empty[int]()

Intermediate Operations:

	s.Filter(func(x int) bool { return x > 0 })
	s.Map(func(x int) int { return x * 2 })
	s.FlatMap(func(x int) stream.Stream[int] { return stream.Of(x, x) })
	s.Distinct()
	s.Sorted(cmp.Compare[int]) // stable
	s.Skip(5)
	s.Limit(10)
	s.Peek(func(x int) { log.Printf("Processing: %d", x) })

Go methods cannot introduce type parameters, so operations that change the
element type are package functions:

	names := stream.Map(items, func(i Item) string { return i.Name })
	chars := stream.FlatMap(names, func(n string) stream.Stream[string] {
		return stream.FromSlice(strings.Split(n, ""))
	})
	unique := stream.DistinctBy(items, func(i Item) string { return i.Name })

Terminal Operations:

	err := s.ForEach(ctx, func(x int) { fmt.Println(x) })
	sum, err := s.Reduce(ctx, 0, func(acc, x int) int { return acc + x })
	slice, err := s.ToSlice(ctx)
	count, err := s.Count(ctx)
	first, found, err := s.FindFirst(ctx)
	hasAny, err := s.AnyMatch(ctx, predicate)
	hasAll, err := s.AllMatch(ctx, predicate)
	hasNone, err := s.NoneMatch(ctx, predicate)
	minimum, found, err := s.Min(ctx, cmp.Compare[int])
	maximum, found, err := s.Max(ctx, cmp.Compare[int])

Collectors:

	groups, err := stream.GroupBy(ctx, items, func(i Item) Category { return i.Category })
	parts, err := stream.PartitionBy(ctx, items, func(i Item) bool { return i.Total > 1000 })
	csv, err := stream.Joining(ctx, names, ",")

Error Handling:

Source failures (a missing file, invalid random bounds) travel down the pipeline
and are returned by the terminal operation. Context expiry returns ctx.Err():

	_, err := stream.FromFile(path).Count(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		// ...
	}
*/
package stream
