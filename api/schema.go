package api

// SchemaVersion is the version of the Structure document format.
const SchemaVersion = "1"

// Structure is a parsed diagram in a form other tools can consume.
type Structure struct {
	// Version of the document format.
	Version string `json:"version"`
	// Files and Dirs are the totals a generation would create.
	Files int `json:"files"`
	Dirs  int `json:"dirs"`
	// Nodes are the top-level directories of the diagram.
	Nodes []Node `json:"nodes,omitempty"`
	// Files at the top level (diagrams whose root lines name files).
	Leaves []Leaf `json:"leaves,omitempty"`
}

// Node is a directory.
type Node struct {
	Name     string `json:"name"`
	Children []Node `json:"children,omitempty"`
	Files    []Leaf `json:"files,omitempty"`
}

// Leaf is a file and the content it would be written with.
type Leaf struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	// Source is "inline", "template" or "" when the file would be empty.
	Source string `json:"source,omitempty"`
}
