package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idlkit/webidl/ast"
	"github.com/idlkit/webidl/parser"
)

func newParseCmd() *cobra.Command {
	var parseFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a WebIDL fragment and print its syntax tree",
		Long: `Parse a WebIDL fragment and print its syntax tree to stdout.

If no file is provided, reads WebIDL from stdin. Grammar errors are reported
on stderr; the partial tree is still printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			f := parser.Parse(string(source))
			for _, e := range ast.Errors(f) {
				fmt.Fprintf(os.Stderr, "error at offset %d: %s\n", e.Start, e.Message)
			}

			switch parseFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(f); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if err := parser.Dump(os.Stdout, f); err != nil {
					return err
				}
				fmt.Println()
			default:
				return fmt.Errorf("unknown format: %s (expected json or tree)", parseFormat)
			}

			if len(ast.Errors(f)) > 0 {
				return fmt.Errorf("%d parse errors", len(ast.Errors(f)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&parseFormat, "format", "f", "tree", "output format (json, tree)")

	return cmd
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source, nil
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return source, nil
}
