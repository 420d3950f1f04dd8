// japanesevariants runs the width variants rewriter over kagome-tokenized
// text and manages the stored width preferences.
//
// Usage:
//
//	japanesevariants rewrite [--request=conversion] [--json] [--phrases] [text...]
//	japanesevariants classify <text...>
//	japanesevariants set-form <sample> <full|half>
//	japanesevariants learn <sample> [full|half]
//	japanesevariants clear-history
//	japanesevariants reset
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
