package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/walles/bitsep"
	"github.com/walles/bitsep/internal/input"
	"github.com/walles/bitsep/internal/logs"
)

var versionString = "Should be set when building, using -ldflags \"-X main.versionString=...\""

type options struct {
	// Format values as bit-strings rather than integers
	bits bool

	// Only accept 0 and 1 in bit-strings
	strict bool
}

type commandLine struct {
	options

	printVersion bool
	debug        bool
	trace        bool

	values []string
}

// printProblemsHeader prints bug reporting information to stderr
func printProblemsHeader() {
	fmt.Fprintln(os.Stderr, "Version:", versionString)
	fmt.Fprintln(os.Stderr, "GOOS    :", runtime.GOOS)
	fmt.Fprintln(os.Stderr, "GOARCH  :", runtime.GOARCH)
	fmt.Fprintln(os.Stderr, "Compiler:", runtime.Compiler)
	fmt.Fprintln(os.Stderr)
}

// formatValue renders one command line or stdin value.
func formatValue(value string, opts options) (string, error) {
	if opts.bits {
		if err := bitsep.CheckBits(value); err != nil {
			if opts.strict {
				return "", fmt.Errorf("%s: %w", value, err)
			}
			log.Debugf("Grouping non-binary input %q anyway: %v", value, err)
		}

		return bitsep.FormatBits(value), nil
	}

	unsigned, err := strconv.ParseUint(value, 0, 64)
	if err == nil {
		return bitsep.FormatUint64(unsigned), nil
	}

	// ParseUint doesn't do signs
	if strings.HasPrefix(value, "-") || strings.HasPrefix(value, "+") {
		signed, signedErr := strconv.ParseInt(value, 0, 64)
		if signedErr == nil {
			if signed < 0 {
				log.Tracef("Rendering %s as two's complement", value)
			}
			return bitsep.FormatInt(signed), nil
		}
		err = signedErr
	}

	return "", fmt.Errorf("not an integer, try -bits for bit-strings: %w", err)
}

// collectValues returns the values from the command line, or from stdin if the
// command line has none.
func collectValues(args []string, stdin io.Reader, stdinIsRedirected bool) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if !stdinIsRedirected {
		return nil, errors.New("values or input pipe required")
	}

	decompressed, err := input.Decompress(stdin)
	if err != nil {
		return nil, err
	}
	defer decompressed.Close() //nolint:errcheck

	return input.Values(decompressed)
}

// run formats all values onto output, one per line. Formatting stops at the
// first bad value.
func run(values []string, opts options, output io.Writer) error {
	for _, value := range values {
		formatted, err := formatValue(value, opts)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(output, formatted); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}

// combineArgs puts the options from the BITSEP environment variable before the
// command line ones, so that the command line wins.
func combineArgs(envOptions string, args []string) []string {
	envOptions = strings.TrimSpace(envOptions)
	if len(envOptions) == 0 {
		return args
	}

	return append(strings.Fields(envOptions), args...)
}

// parseCommandLine never prints anything, error reporting and usage are up to
// the caller. Asking for help gives flag.ErrHelp.
func parseCommandLine(args []string) (*commandLine, *flag.FlagSet, error) {
	parsed := &commandLine{}

	flagSet := flag.NewFlagSet("", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}
	flagSet.BoolVar(&parsed.printVersion, "version", false, "Prints the bitsep version number")
	flagSet.BoolVar(&parsed.debug, "debug", false, "Print debug logs after exiting")
	flagSet.BoolVar(&parsed.trace, "trace", false, "Print trace logs after exiting")
	flagSet.BoolVar(&parsed.bits, "bits", false, "Treat values as bit-strings and group them as-is")
	flagSet.BoolVar(&parsed.strict, "strict", false, "With -bits, only accept 0 and 1 characters")

	err := flagSet.Parse(args)
	parsed.values = flagSet.Args()
	return parsed, flagSet, err
}

// -trace beats -debug
func (c *commandLine) logLevel() log.Level {
	if c.trace {
		return log.TraceLevel
	}
	if c.debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

func (c *commandLine) warnings() []string {
	var warnings []string
	if c.strict && !c.bits {
		warnings = append(warnings, "-strict has no effect without -bits")
	}
	return warnings
}

// Logs are only interesting if something went wrong, or if the user asked for
// them.
func shouldPrintLogs(collector *logs.Collector, failed bool, settings *commandLine) bool {
	if len(collector.String()) == 0 {
		return false
	}

	return failed || collector.HasProblems() || settings.debug || settings.trace
}

// execute does everything main() does, except for exiting. The return value is
// the exit code.
func execute(args []string, envOptions string, stdin io.Reader, stdinIsRedirected bool, stdout io.Writer, stderr io.Writer) int {
	settings, flagSet, err := parseCommandLine(combineArgs(envOptions, args))
	if errors.Is(err, flag.ErrHelp) {
		printUsage(stdout, flagSet, false)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "ERROR: Command line parsing failed:", err.Error()) //nolint:errcheck
		fmt.Fprintln(stderr)                                                     //nolint:errcheck
		printUsage(stderr, flagSet, true)
		return 1
	}

	if settings.printVersion {
		fmt.Fprintln(stdout, versionString) //nolint:errcheck
		return 0
	}

	collector := logs.StartCollecting()
	log.SetLevel(settings.logLevel())
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339Nano,
	})

	if len(strings.TrimSpace(envOptions)) > 0 {
		log.Debugf("Options from BITSEP environment variable: %s", envOptions)
	}

	for _, warning := range settings.warnings() {
		log.Warn(warning)
	}

	values, err := collectValues(settings.values, stdin, stdinIsRedirected)
	if err == nil {
		err = run(values, settings.options, stdout)
	}

	if shouldPrintLogs(collector, err != nil, settings) {
		fmt.Fprint(stderr, collector.String()) //nolint:errcheck
	}

	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err) //nolint:errcheck
		fmt.Fprintln(stderr)                //nolint:errcheck
		printUsage(stderr, flagSet, true)
		return 1
	}

	return 0
}

func main() {
	defer func() {
		err := recover()
		if err == nil {
			return
		}

		printProblemsHeader()
		panic(err)
	}()

	stdinIsRedirected := !term.IsTerminal(int(os.Stdin.Fd()))
	os.Exit(execute(os.Args[1:], os.Getenv("BITSEP"), os.Stdin, stdinIsRedirected, os.Stdout, os.Stderr))
}
