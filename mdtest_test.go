// Driver for the Markdown test corpus under testdata/. Each document holds
// named cases (see package mdtest); every case compiles its rue program and
// checks the assertion fences against the assembly or an actual run.

package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/crumbtoo/ruelang/mdtest"
)

func TestMarkdownCorpus(t *testing.T) {
	docs, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(docs) > 0)

	for _, doc := range docs {
		content, err := os.ReadFile(doc)
		be.Err(t, err, nil)
		cases, err := mdtest.Extract(string(content))
		be.Err(t, err, nil)

		for _, c := range cases {
			t.Run(filepath.Base(doc)+"/"+c.Name, func(t *testing.T) {
				runMarkdownCase(t, c)
			})
		}
	}
}

func runMarkdownCase(t *testing.T, c mdtest.Case) {
	t.Helper()

	for _, a := range c.Assertions {
		if a.Type == mdtest.AssertError {
			_, err := Compile(c.Input)
			if err == nil {
				t.Fatalf("expected compilation to fail")
			}
			be.True(t, strings.Contains(err.Error(), a.Content))
			return
		}
	}

	asm, err := Compile(c.Input)
	be.Err(t, err, nil)

	var result uint32
	var output string
	ran := false

	for _, a := range c.Assertions {
		switch a.Type {
		case mdtest.AssertAsm:
			for _, line := range strings.Split(a.Content, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if !strings.Contains(asm, line) {
					t.Errorf("assembly does not contain %q:\n%s", line, asm)
				}
			}

		case mdtest.AssertOutput, mdtest.AssertResult:
			if !ran {
				m, err := newSimMachine(asm)
				be.Err(t, err, nil)
				result, output, err = m.run("main")
				be.Err(t, err, nil)
				ran = true
			}
			if a.Type == mdtest.AssertOutput {
				be.Equal(t, output, a.Content)
			} else {
				expected, err := strconv.ParseUint(a.Content, 10, 32)
				be.Err(t, err, nil)
				be.Equal(t, result, uint32(expected))
			}
		}
	}
}
