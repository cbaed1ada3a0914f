// Command preview renders subscriber commands and daily briefs locally,
// without Kafka, for catalog authors and support.
//
// Usage:
//
//	preview parse "Bratislava\nbrutal"
//	preview classify --temp-max 31 --precip 0 --prob 10 --wind 12
//	preview report -f testdata/brno.yaml --catalog-dir ./catalogs
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
