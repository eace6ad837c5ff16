// Command auctionctl drives the single-user wallet and auction ledger from
// the terminal, keeping state in a data directory between runs.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "auctionctl: %v\n", err)
		os.Exit(1)
	}
}
