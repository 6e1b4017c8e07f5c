package main

import (
	"fmt"
	"strconv"
)

// parseIndex turns a 1-based position from the command line into a list index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", arg)
	}
	if n < 1 {
		return 0, fmt.Errorf("positions start at 1, got %d", n)
	}
	return n - 1, nil
}
