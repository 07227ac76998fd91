/*
Package streaming groups the data-flow packages used by rainbow:

  - stream: Lazy, single-use pipelines over slices, channels, iterators,
    generators and files
  - writer: Asynchronous writer that buffers data and writes in background

Basic usage:

	w := writer.New(os.Stdout)
	defer w.Close()

	err := stream.Range(0, 5).ForEach(ctx, func(n int) {
		fmt.Fprintln(w, n)
	})

Every terminal operation takes a context and returns source errors, so a
missing file or a cancelled run surfaces where the pipeline is consumed.
*/
package streaming
