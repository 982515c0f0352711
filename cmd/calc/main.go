// Command calc evaluates arithmetic expressions given as arguments, or one
// per line on stdin.
//
//	calc "(2 + 3) * (4 - 1)"
//	echo "2 ^ 3 ^ 2" | calc -postfix
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/XJIeI5/evaluation"
	"github.com/XJIeI5/evaluation/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("calc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	postfixPtr := flags.Bool("postfix", false, "print the postfix form instead of the value")
	strictPtr := flags.Bool("strict", false, "reject malformed expressions")
	levelPtr := flags.String("log-level", "warn", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	e := evaluation.Evaluator{
		Strict: *strictPtr,
		Logger: logger.New(stderr, *levelPtr),
	}

	exprs := flags.Args()
	if len(exprs) == 0 {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	code := 0
	for _, expr := range exprs {
		if *postfixPtr {
			postfix, err := e.InfixToPostfix(expr)
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", expr, err)
				code = 1
				continue
			}
			fmt.Fprintln(stdout, postfix)
			continue
		}

		v, err := e.EvaluateInfix(expr)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", expr, err)
			code = 1
			continue
		}
		fmt.Fprintf(stdout, "%g\n", v)
	}
	return code
}
