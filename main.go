package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/compiler"
	"github.com/adderlang/adder/eval"
	"github.com/adderlang/adder/jit"
	"github.com/adderlang/adder/parser"
)

const appName = "adder"

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %s -c <in.snek> <out.s>   Compile to assembly.
  %s -e <in.snek>           Compile to machine code, run it and print the result.
  %s -g <in.snek> <out.s>   Both of the above.
  %s -r <in.snek>           Evaluate with the reference interpreter.
  %s -i                     Start an interactive session.
  %s version                Print version information.
`, appName, appName, appName, appName, appName, appName)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches on the mode flag and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 1
	}

	cfg := loadConfig()
	log := newLogger(stderr, cfg.LogLevel)

	mode, rest := args[0], args[1:]
	switch mode {
	case "-c", "-g":
		if len(rest) != 2 {
			fmt.Fprintf(stderr, "Error: %s requires an input and an output file\n", mode)
			return 1
		}
	case "-e", "-r":
		if len(rest) != 1 {
			fmt.Fprintf(stderr, "Error: %s requires an input file\n", mode)
			return 1
		}
	case "-i":
		if len(rest) != 0 {
			fmt.Fprintln(stderr, "Error: -i takes no arguments")
			return 1
		}
		return repl(cfg, log, stdout, stderr)
	case "version", "-v", "--version":
		printVersion(stdout)
		return 0
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown flag: %s. Use -c, -e, -g, -r or -i\n", mode)
		usage(stderr)
		return 1
	}

	expr, err := readProgram(rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.Debug().Str("file", rest[0]).Str("expr", expr.String()).Msg("parsed")

	if mode == "-c" || mode == "-g" {
		if err := writeAsm(expr, rest[1]); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		log.Debug().Str("file", rest[1]).Msg("wrote assembly")
	}

	var result int64
	switch mode {
	case "-c":
		return 0
	case "-r":
		result, err = eval.Eval(expr, nil)
	default:
		result, err = runNative(expr, log)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, result)
	return 0
}

func readProgram(path string) (ast.Expression, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parser.Parse(path, string(src), parser.Batch)
}

func writeAsm(expr ast.Expression, path string) error {
	asm, err := compiler.AsmProgram(expr)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(asm), 0644); err != nil {
		return fmt.Errorf("write assembly to %s: %w", path, err)
	}
	return nil
}

// runNative compiles expr to machine code and calls it.
func runNative(expr ast.Expression, log zerolog.Logger) (int64, error) {
	code, err := compiler.Program(expr)
	if err != nil {
		return 0, err
	}
	buf, err := jit.NewBuffer(len(code))
	if err != nil {
		return 0, err
	}
	defer buf.Close()

	f, err := buf.Emit(code)
	if err != nil {
		return 0, err
	}
	log.Debug().Int("size", f.Size()).Msg("running")
	return f.Call(), nil
}
