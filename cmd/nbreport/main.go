package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	command, rest := args[1], args[2:]

	var err error
	switch command {
	case "nb2md":
		err = runNb2md(ctx, rest, env)
	case "md2docx":
		err = runMd2docx(ctx, rest, env)
	case "report":
		err = runReport(ctx, rest, env)
	case "preview":
		err = runPreview(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "nbreport %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
