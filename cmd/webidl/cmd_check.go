package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/idlkit/webidl/idl"
)

func newCheckCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate WebIDL fragments and print the finished declarations",
		Long: `Validate one or more WebIDL fragments as a single unit.

All files are parsed into one accumulation, so fragments may reference each
other; partials and includes statements are merged before validation. With no
arguments, reads a single fragment from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			log := commonlog.GetLogger("webidl.check")

			p := idl.NewParser()
			if len(args) == 0 {
				source, err := readSource(nil)
				if err != nil {
					return err
				}
				if err := p.Parse(string(source)); err != nil {
					return fmt.Errorf("stdin: %w", err)
				}
			}
			for _, fname := range args {
				log.Debugf("parsing %s", fname)
				source, err := os.ReadFile(fname)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				if err := p.Parse(string(source)); err != nil {
					return fmt.Errorf("%s: %w", fname, err)
				}
			}

			decls, err := p.Finish()
			if err != nil {
				return err
			}
			log.Infof("validated %d declarations", len(decls))

			for _, d := range decls {
				switch n := d.(type) {
				case *idl.Interface:
					kind := "interface"
					if n.IsCallback() {
						kind = "callback interface"
					}
					fmt.Printf("%s %s (%d members)\n", kind, n.QName(), len(n.Members()))
					if ctor := n.Ctor(); ctor != nil {
						fmt.Printf("  constructor with %d signatures\n", len(ctor.Signatures()))
					}
				case *idl.Mixin:
					fmt.Printf("mixin %s (%d members)\n", n.QName(), len(n.Members()))
				case *idl.Dictionary:
					fmt.Printf("dictionary %s (%d members)\n", n.QName(), len(n.Members()))
				case *idl.Enum:
					fmt.Printf("enum %s (%d values)\n", n.QName(), len(n.Values()))
				case *idl.Typedef:
					fmt.Printf("typedef %s = %s\n", n.QName(), n.Type().Name())
				case *idl.Callback:
					fmt.Printf("callback %s\n", n.QName())
				case *idl.Namespace:
					fmt.Printf("namespace %s (%d members)\n", n.QName(), len(n.Members()))
				}
			}
			return nil
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")

	return cmd
}
