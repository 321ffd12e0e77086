package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/urfave/cli/v2"

	"github.com/mochalang/mocha/lib/analyzer"
	"github.com/mochalang/mocha/lib/codegen"
	"github.com/mochalang/mocha/lib/lexer"
	"github.com/mochalang/mocha/lib/parser"
)

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "The name for the built binary",
		},
		&cli.BoolFlag{
			Name:    "emit-c",
			Aliases: []string{"c"},
			Usage:   "Keep the generated C file next to the binary",
		},
		&cli.BoolFlag{
			Name:    "dump-ast",
			Aliases: []string{"d"},
			Usage:   "Dump the AST to stdout and stop",
		},
		&cli.StringFlag{
			Name:  "cc",
			Usage: "The C compiler to invoke",
			Value: "cc",
		},
		&cli.StringSliceFlag{
			Name:    "cc-args",
			Aliases: []string{"a"},
			Usage: "Pass additional arguments to the C compiler. " +
				"Useful for passing flags like -O2 or -g.",
		},
	}
}

func init() {
	commands = append(commands,
		&cli.Command{
			Name:     "build",
			Usage:    "Build a Mocha source file",
			Category: "compile",
			Flags:    buildFlags(),
			Action:   build,
		},
		&cli.Command{
			Name:     "run",
			Usage:    "Build and run a Mocha source file",
			Category: "compile",
			Flags:    buildFlags(),
			Action:   run,
		},
	)
}

func build(c *cli.Context) error {
	_, err := buildFile(c)
	return err
}

func run(c *cli.Context) error {
	outpath, err := buildFile(c)
	if err != nil || outpath == "" {
		return err
	}

	if !strings.Contains(outpath, string(filepath.Separator)) {
		outpath = "." + string(filepath.Separator) + outpath
	}

	cmd := exec.Command(outpath, c.Args().Tail()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return cli.Exit(color.RedString("Error running binary: %s", err), 1)
	}

	return nil
}

// buildFile runs the full pipeline on the first argument: lex, parse,
// analyze, generate C, then hand the C file to the system C compiler.
// It returns the path of the produced binary.
func buildFile(c *cli.Context) (string, error) {
	filename := c.Args().First()
	if filename == "" {
		return "", cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	start := time.Now()

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", cli.Exit(color.RedString("Error: %s", errors.Wrapf(err, "reading %s", filename)), 1)
	}
	source := string(data)

	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		return "", cli.Exit(color.RedString("%s", err), 1)
	}

	program, err := parser.New(tokens, source, filename).Parse()
	if err != nil {
		return "", cli.Exit(color.RedString("%s", err), 1)
	}

	if c.Bool("dump-ast") {
		litter.Dump(program)
		return "", nil
	}

	program, warnings := analyzer.Analyze(program)
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning: %s", warning))
	}

	cCode, err := codegen.Generate(program)
	if err != nil {
		return "", cli.Exit(color.RedString("Error compiling: %s", err), 1)
	}

	outpath := c.String("output")
	if outpath == "" {
		outpath = outputName(filename)
	}

	cFile := outpath + ".c"
	if err := os.WriteFile(cFile, []byte(cCode), 0644); err != nil {
		return "", cli.Exit(color.RedString("Error: %s", errors.Wrap(err, "writing C output")), 1)
	}

	compiler := c.String("cc")
	args := append([]string{cFile, "-o", outpath}, c.StringSlice("cc-args")...)

	var stderr bytes.Buffer
	cmd := exec.Command(compiler, args...)
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if !c.Bool("emit-c") {
		os.Remove(cFile)
	}
	if runErr != nil {
		out := strings.TrimSpace(stderr.String())
		if out == "" {
			out = runErr.Error()
		}
		return "", cli.Exit(color.RedString("%s failed: %s", compiler, out), 1)
	}

	fmt.Println(color.GreenString("Compiled %s to %s in %s",
		filename, outpath, formatDuration(time.Since(start))))

	return outpath, nil
}

// outputName derives the binary name from the source file stem.
func outputName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" {
		return "output"
	}
	return stem
}

// formatDuration renders an elapsed time in its largest whole unit:
// seconds under a minute, minutes under an hour, hours beyond that.
func formatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		return fmt.Sprintf("%dm", total/60)
	default:
		return fmt.Sprintf("%dh", total/3600)
	}
}
