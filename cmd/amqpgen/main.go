// Command amqpgen scans a package's source for amqp-tagged structs and
// prints, per file, the names of the structs it finds. It writes no
// files and generates no code: the reflection path in package derive is
// the implementation every performative uses.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
)

func main() {
	dir := flag.String("dir", ".", "package directory to scan for amqp-tagged structs")
	flag.Parse()

	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, *dir, nil, parser.ParseComments)
	if err != nil {
		fmt.Fprintln(os.Stderr, "amqpgen:", err)
		os.Exit(1)
	}

	for _, pkg := range pkgs {
		for path, file := range pkg.Files {
			structs := findTaggedStructs(file)
			if len(structs) == 0 {
				continue
			}
			fmt.Printf("%s: found %d amqp-tagged struct(s): %s\n", path, len(structs), strings.Join(structs, ", "))
		}
	}
}

// findTaggedStructs returns the names of struct types in file that carry at
// least one field with an `amqp:"..."` tag.
func findTaggedStructs(file *ast.File) []string {
	var names []string
	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return true
		}
		for _, f := range st.Fields.List {
			if f.Tag == nil {
				continue
			}
			if strings.Contains(f.Tag.Value, `amqp:"`) {
				names = append(names, ts.Name.Name)
				break
			}
		}
		return true
	})
	return names
}
