package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

func printUsage(output io.Writer, flagSet *flag.FlagSet, printCommandline bool) {
	// This controls where PrintDefaults() prints, see below
	flagSet.SetOutput(output)

	envOptions := os.Getenv("BITSEP")
	if printCommandline {
		fmt.Fprintln(output, "Commandline: bitsep", strings.Join(os.Args[1:], " ")) //nolint:errcheck
		fmt.Fprintf(output, "Environment: BITSEP=\"%v\"\n", envOptions)             //nolint:errcheck
		fmt.Fprintln(output)                                                        //nolint:errcheck
	}

	fmt.Fprintln(output, "Usage:")                                                                   //nolint:errcheck
	fmt.Fprintln(output, "  bitsep [options] <value> ...")                                           //nolint:errcheck
	fmt.Fprintln(output, "  ... | bitsep [options]")                                                 //nolint:errcheck
	fmt.Fprintln(output)                                                                             //nolint:errcheck
	fmt.Fprintln(output, "Prints each value as 64 binary digits in groups of four, like")            //nolint:errcheck
	fmt.Fprintln(output, "0000_..._0010_1010. Values can be written as 42, 0x2a, 0b101010 or 0o52.") //nolint:errcheck
	fmt.Fprintln(output, "Piped input has one value per line. Compressed input is decompressed.")    //nolint:errcheck
	fmt.Fprintln(output)                                                                             //nolint:errcheck
	fmt.Fprintln(output, "Environment:")                                                             //nolint:errcheck
	if len(envOptions) == 0 {
		fmt.Fprintln(output, "  Additional options are read from the BITSEP environment variable if set.") //nolint:errcheck
		fmt.Fprintln(output, "  But currently, the BITSEP environment variable is not set.")               //nolint:errcheck
	} else {
		fmt.Fprintln(output, "  Additional options are read from the BITSEP environment variable.") //nolint:errcheck
		fmt.Fprintf(output, "  Current setting: BITSEP=\"%s\"\n", envOptions)                       //nolint:errcheck
	}
	fmt.Fprintln(output)             //nolint:errcheck
	fmt.Fprintln(output, "Options:") //nolint:errcheck

	flagSet.PrintDefaults()
}
