package writer_test

import (
	"fmt"
	"os"

	"github.com/vnykmshr/rainbow/pkg/streaming/writer"
)

func Example() {
	w := writer.New(os.Stdout)

	fmt.Fprintln(w, "buffered line one")
	fmt.Fprintln(w, "buffered line two")

	// Close flushes whatever is still buffered.
	if err := w.Close(); err != nil {
		fmt.Println("close:", err)
	}

	// Output:
	// buffered line one
	// buffered line two
}
