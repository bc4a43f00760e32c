package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adderlang/adder/jit"
	"github.com/adderlang/adder/session"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.snek")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCompileOnly(t *testing.T) {
	in := writeSource(t, "(let ((a 5) (b (+ a 1))) (* a b))")
	out := filepath.Join(t.TempDir(), "prog.s")

	code, stdout, stderr := runArgs("-c", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	asm, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(asm)
	assert.True(t, strings.HasPrefix(text, "section .text\nglobal our_code_starts_here\nour_code_starts_here:\n"), text)
	assert.True(t, strings.HasSuffix(text, "  ret\n"), text)
	assert.Contains(t, text, "imul rax, [rsp - 32]")
}

func TestReferenceMode(t *testing.T) {
	in := writeSource(t, "(- 10 3)")
	code, stdout, stderr := runArgs("-r", in)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "7\n", stdout)
}

func TestRunModes(t *testing.T) {
	if !jit.Supported() {
		t.Skip("native execution not supported on this host")
	}

	in := writeSource(t, "(let ((a 5) (b (+ a 1))) (* a b))")
	code, stdout, stderr := runArgs("-e", in)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "30\n", stdout)

	out := filepath.Join(t.TempDir(), "both.s")
	code, stdout, stderr = runArgs("-g", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "30\n", stdout)
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestOneShotErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"duplicate binding", "(let ((x 1) (x 2)) x)", "duplicate binding"},
		{"unbound", "(add1 y)", "unbound variable"},
		{"define", "(define x 1)", "multiple definition"},
		{"syntax", "(+ 1", "syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeSource(t, tt.src)
			out := filepath.Join(t.TempDir(), "prog.s")

			code, stdout, stderr := runArgs("-c", in, out)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err), "no assembly is written on error")

			code, _, stderr = runArgs("-r", in)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-x"},
		{"-c", "only-input"},
		{"-e"},
		{"-i", "extra"},
	} {
		code, _, stderr := runArgs(args...)
		assert.Equal(t, 1, code, "args: %v", args)
		assert.NotEmpty(t, stderr, "args: %v", args)
	}

	code, _, stderr := runArgs("-e", filepath.Join(t.TempDir(), "missing.snek"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing.snek")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runArgs("version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "adder dev ("), stdout)
}

// lines returns a next function reading from src like the terminal prompt.
func lines(src string) func() (string, error) {
	sc := bufio.NewScanner(strings.NewReader(src))
	return func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		return "", io.EOF
	}
}

func TestLoop(t *testing.T) {
	if !jit.Supported() {
		t.Skip("native execution not supported on this host")
	}
	sess, err := session.New()
	require.NoError(t, err)
	defer sess.Close()

	input := strings.Join([]string{
		"(define x 41)",
		"",
		"(add1 x)",
		"(define x 1)",
		"x",
		"(let ((y 1) (y 2)) y)",
		"(- 10 3)",
		"quit",
		"(add1 1)",
	}, "\n")

	var out, errOut bytes.Buffer
	loop(sess, lines(input), &out, &errOut)

	assert.Equal(t, "42\n41\n7\n", out.String())
	assert.Contains(t, errOut.String(), "duplicate definition")
	assert.Contains(t, errOut.String(), "duplicate binding")
	assert.Equal(t, 2, strings.Count(errOut.String(), "Error: "))
}

func TestLoopEndOfInput(t *testing.T) {
	if !jit.Supported() {
		t.Skip("native execution not supported on this host")
	}
	sess, err := session.New()
	require.NoError(t, err)
	defer sess.Close()

	var out, errOut bytes.Buffer
	loop(sess, lines("(* 6 7)"), &out, &errOut)
	assert.Equal(t, "42\n\n", out.String())
	assert.Empty(t, errOut.String())
}
