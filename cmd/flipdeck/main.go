package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(runApp).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "flipdeck: %v\n", err)
		os.Exit(1)
	}
}
