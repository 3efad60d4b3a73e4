/*
Pregexctl compiles a Parallel Regular Expression and enumerates the plans it
accepts.

Usage:

	pregexctl [flags] [PRE]
	pregexctl [flags]

If PRE is given on the command line, it is compiled once and every plan it
accepts is printed to stdout, one per line. If PRE is omitted, pregexctl
starts an interactive session: each line read is compiled and enumerated in
turn, using GNU-readline-style editing and history where the session is
attached to a terminal.

The flags are:

	-v, --version
		Give the current version of pregexctl and then exit.

	-c, --config FILE
		Load default option values from the given TOML config file before
		applying any other flags.

	-m, --minimize
		Minimize the automaton before trimming. Defaults to true.

	-i, --allow-infinite
		Suppress the cyclic-automaton warning and enumerate a bounded prefix
		of plans for PREs built with *.

	-n, --namespace NAMESPACE
		Namespace string passed to the demo dispatcher.

	-d, --dispatch
		Instead of only printing plans, drive each one through a toy
		dispatcher that appends every symbol name to an in-memory scope, and
		print the resulting scope.

	--verbose
		Enable DEBUG diagnostics on stderr.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/dekarrin/pregex/internal/preconfig"
	"github.com/dekarrin/pregex/internal/version"
	"github.com/dekarrin/pregex/pre"
)

const (
	ExitSuccess = iota
	ExitCompileError
	ExitRunError
)

var (
	flagVersion       = pflag.BoolP("version", "v", false, "Give the current version of pregexctl and then exit.")
	flagConfig        = pflag.StringP("config", "c", "", "Load default options from the given TOML config file.")
	flagMinimize      = pflag.BoolP("minimize", "m", true, "Minimize the automaton before trimming.")
	flagAllowInfinite = pflag.BoolP("allow-infinite", "i", false, "Suppress the cyclic-automaton warning.")
	flagNamespace     = pflag.StringP("namespace", "n", "", "Namespace string passed to the demo dispatcher.")
	flagDispatch      = pflag.BoolP("dispatch", "d", false, "Drive plans through the toy append-to-scope dispatcher.")
	flagVerbose       = pflag.Bool("verbose", false, "Enable DEBUG diagnostics on stderr.")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("pregexctl %s\n", version.Current)
		return ExitSuccess
	}

	opts := preconfig.Default()
	if *flagConfig != "" {
		loaded, err := preconfig.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR could not load config: %s\n", err.Error())
			return ExitCompileError
		}
		opts = loaded
	}

	if pflag.Lookup("minimize").Changed {
		opts.Minimize = *flagMinimize
	}
	if pflag.Lookup("allow-infinite").Changed {
		opts.AllowInfinite = *flagAllowInfinite
	}
	if pflag.Lookup("namespace").Changed {
		opts.Namespace = *flagNamespace
	}
	if pflag.Lookup("verbose").Changed {
		opts.Verbose = *flagVerbose
	}

	driverOpts := pre.Options{
		Minimize:      opts.Minimize,
		AllowInfinite: opts.AllowInfinite,
		Namespace:     opts.Namespace,
		Verbose:       opts.Verbose,
		StateCeiling:  opts.StateCeiling,
	}

	args := pflag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		return ExitCompileError
	}

	if len(args) == 1 {
		return runOnce(args[0], driverOpts)
	}

	return runInteractive(driverOpts)
}

func runOnce(src string, opts pre.Options) int {
	c, err := pre.Compile(src, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %s\n", err.Error())
		return ExitCompileError
	}

	if *flagDispatch {
		return dispatchAll(c)
	}
	return printAllPlans(c)
}

func printAllPlans(c *pre.Compiled) int {
	for {
		plan, ok, err := c.NextPlan()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %s\n", err.Error())
			return ExitRunError
		}
		if !ok {
			return ExitSuccess
		}
		fmt.Println(plan)
	}
}

// appendDispatcher is the toy collaborator demonstrating RunOnce: it treats
// scope as a []string and appends every dispatched symbol name to it,
// exactly the dispatcher spec §8 scenario 1 describes.
func appendDispatcher(namespace, name string, scope any) (any, error) {
	names, _ := scope.([]string)
	return append(names, name), nil
}

func dispatchAll(c *pre.Compiled) int {
	for {
		scope, consumed, err := c.RunOnce([]string{}, appendDispatcher)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %s\n", err.Error())
			return ExitRunError
		}
		if !consumed {
			return ExitSuccess
		}
		fmt.Printf("%v\n", scope)
	}
}

func runInteractive(opts pre.Options) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "pre> ",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR could not start interactive session: %s\n", err.Error())
		return ExitCompileError
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "ERROR %s\n", err.Error())
			return ExitRunError
		}
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return ExitSuccess
		}

		c, err := pre.Compile(line, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %s\n", err.Error())
			continue
		}
		if *flagDispatch {
			dispatchAll(c)
		} else {
			printAllPlans(c)
		}
	}
}
