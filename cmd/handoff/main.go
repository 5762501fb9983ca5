package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "inspect":
		return inspectCommand(args[2:])
	case "play":
		return playCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [scenario.toml]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <scenario.toml>")
	fmt.Fprintln(os.Stderr, "    execute a scenario and print its transcript")
	fmt.Fprintln(os.Stderr, "      -max-steps <n>  abort runs longer than n steps")
	fmt.Fprintln(os.Stderr, "      -journal        log cast assembly and host events to stderr")
	fmt.Fprintln(os.Stderr, "  inspect [flags] [scenario.toml]")
	fmt.Fprintln(os.Stderr, "    list known contracts, including any the scenario defines inline")
	fmt.Fprintln(os.Stderr, "      -conformers     report every conformer kind against every contract")
	fmt.Fprintln(os.Stderr, "  play [scenario.toml]")
	fmt.Fprintln(os.Stderr, "    interactive playground (without a scenario, uses the demo cast)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
