// Command seoscan analyzes a single page from the terminal and prints the
// result as JSON.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd(defaultProvider).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
