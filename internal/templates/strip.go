package templates

import "regexp"

var (
	typeAnnotation = regexp.MustCompile(`: [A-Za-z<>\[\]|]+`)
	typeArguments  = regexp.MustCompile(`<[A-Z][A-Za-z]*>`)
	interfaceDecl  = regexp.MustCompile(`(?s)interface [^{]+\{[^}]*\}\n*`)
	typeOnlyImport = regexp.MustCompile(`(?m)^import (type )?\{[^}]*\} from ['"]next['"];\n`)
)

// StripTypes removes the common TypeScript-only constructs from a template
// body. It is a textual approximation that covers the builtin catalog, not
// a compiler.
func StripTypes(ts string) string {
	out := interfaceDecl.ReplaceAllString(ts, "")
	out = typeOnlyImport.ReplaceAllString(out, "")
	out = typeAnnotation.ReplaceAllString(out, "")
	out = typeArguments.ReplaceAllString(out, "")
	return out
}
