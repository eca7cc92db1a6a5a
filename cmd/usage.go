package cmd

import (
	"errors"
	"fmt"
	"io"
)

// errUsage is returned when too few arguments are given; it is reported with
// the usage text instead of an error message
var errUsage = errors.New("usage")

const description = `  Determines elements containing nodes with zero velocity.
  Uses data from $fileprefix_vel.$TS.bin, $fileprefix_coordinates.bin and $fileprefix_connectivity.bin.
  Contents of output file: number of elements (int), element flags (int: 0 if interior element,
  otherwise the number of the element's nodes with zero velocity).
  Output file has name fileprefix_bflags.bin naming convention for use with flowVC.`

func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s [flags] ND fileprefix TS\n", name)
	fmt.Fprintf(w, "Flags go before ND; use -- ahead of a negative ND.\n")
	fmt.Fprintf(w, "Description:\n%s\n", description)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\nERROR:\n%s\n", err)
}
