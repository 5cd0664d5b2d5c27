package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Go(t *testing.T) {
	input := []byte("package main\n\nfunc A()  {\nreturn\n}\n")
	got := Format(input, "cmd/main.go")
	assert.Equal(t, "package main\n\nfunc A() {\n\treturn\n}\n", string(got))
}

func TestFormat_HCL(t *testing.T) {
	input := []byte("variable \"region\" {\ndefault=\"us-east-1\"\n}\n")
	got := Format(input, "infra/main.tf")
	assert.Equal(t, "variable \"region\" {\n  default = \"us-east-1\"\n}\n", string(got))
}

func TestFormat_Passthrough(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"other language", "main.py", "def foo():\n  pass\n"},
		{"broken go", "main.go", "func broken {{{"},
		{"broken hcl", "main.hcl", "block {"},
		{"no extension", "Makefile", "all:\n\ttrue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.body, string(Format([]byte(tt.body), tt.path)))
		})
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"a/page.tsx", "tsx", true},
		{"a/route.ts", "typescript", true},
		{"a/button.jsx", "javascript", true},
		{"a/MAIN.GO", "go", true},
		{"styles/globals.css", "css", true},
		{"main.tf", "hcl", true},
		{"README.md", "", false},
		{".env.local", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			name, lang, ok := Language(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
			if ok {
				assert.NotNil(t, lang)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		path string
		body string
	}{
		{"main.go", "package main\n\nfunc hello() string {\n\treturn \"world\"\n}\n"},
		{"app.py", "def hello():\n    return \"world\"\n"},
		{"app.js", "function hello() { return \"world\"; }"},
		{"page.tsx", "export default function Page() {\n  return <div className=\"x\">hi</div>;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.NoError(t, Validate(context.Background(), []byte(tt.body), tt.path))
		})
	}
}

func TestValidate_BrokenGo(t *testing.T) {
	src := []byte("package main\n\nfunc hello() string {\n\treturn \"world\"\n// missing closing brace\n")
	err := Validate(context.Background(), src, "pkg/test.go")
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "pkg/test.go", ve.Path)
	assert.Equal(t, "go", ve.Language)
	assert.Contains(t, ve.Error(), "pkg/test.go:")
}

func TestValidate_BrokenPython(t *testing.T) {
	err := Validate(context.Background(), []byte("def hello(\n    return \"world\"\n"), "x.py")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidate_PassThrough(t *testing.T) {
	assert.NoError(t, Validate(context.Background(), []byte("{{{ not code"), "notes.txt"))
	assert.NoError(t, Validate(context.Background(), nil, "empty.go"))
}
