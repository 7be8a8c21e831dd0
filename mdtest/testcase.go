// Package mdtest extracts compiler test cases from Markdown documents.
//
// A test case is a heading of the form "Test: <name>" followed by fenced code
// blocks: exactly one rue-program input fence, and one or more assertion
// fences (asm, output, result, compile-error).
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the fence language of a test-case input.
type InputType string

const (
	InputRueProgram InputType = "rue-program"
)

// AssertionType is the fence language of a test-case assertion.
type AssertionType string

const (
	// AssertAsm: every non-empty line of the fence must appear in the
	// generated assembly.
	AssertAsm AssertionType = "asm"
	// AssertOutput: executing the program must produce exactly this output.
	AssertOutput AssertionType = "output"
	// AssertResult: executing the program must leave this value in the
	// result register.
	AssertResult AssertionType = "result"
	// AssertError: compilation must fail and the error must contain this text.
	AssertError AssertionType = "compile-error"
)

// Assertion is a single assertion fence.
type Assertion struct {
	Type    AssertionType
	Content string
}

// Case is one complete test case extracted from Markdown.
type Case struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// Extract parses a Markdown document and returns all test cases in it.
func Extract(markdown string) ([]Case, error) {
	md := goldmark.New()
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if strings.HasPrefix(heading, "Test: ") {
				if err := flush(); err != nil {
					return ast.WalkStop, err
				}
				current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			if language == "" {
				return ast.WalkContinue, nil
			}
			if !isInputFence(language) && !isAssertionFence(language) {
				return ast.WalkStop, fmt.Errorf("unknown fence language %q", language)
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("%s fence found outside of a test case", language)
			}
			content := fenceContent(n, source)

			if isInputFence(language) {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("multiple input fences in test %q", current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")
				current.InputType = InputType(language)
				return ast.WalkContinue, nil
			}

			current.Assertions = append(current.Assertions, Assertion{
				Type:    AssertionType(language),
				Content: strings.TrimRight(content, "\n"),
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func isInputFence(language string) bool {
	return language == string(InputRueProgram)
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertAsm, AssertOutput, AssertResult, AssertError:
		return true
	}
	return false
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test %q has no input fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", c.Name)
	}
	return nil
}

// nodeText extracts the plain text content of a Markdown node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// fenceContent extracts the body of a fenced code block.
func fenceContent(fence *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < fence.Lines().Len(); i++ {
		line := fence.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
