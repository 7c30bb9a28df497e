package main

import "strings"

// rootsFlag collects repeated -r NAME occurrences into a slice, giving the
// CLI an argparse-style nargs='+'-like repeatable flag via flag.Value.
type rootsFlag []string

func (r *rootsFlag) String() string {
	return strings.Join(*r, ",")
}

func (r *rootsFlag) Set(value string) error {
	*r = append(*r, value)
	return nil
}
