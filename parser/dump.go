package parser

import (
	"bytes"
	"io"

	"github.com/kr/pretty"

	"github.com/idlkit/webidl/ast"
)

// Dump writes a human-readable representation of the node to w.
func Dump(w io.Writer, n ast.Node) error {
	_, err := pretty.Fprintf(w, "%# v", n)
	return err
}

// DumpString returns a human-readable representation of the node.
func DumpString(n ast.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Dump(buf, n); err != nil {
		panic(err)
	}
	return buf.String()
}
