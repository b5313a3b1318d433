package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	aojia "github.com/smnsjas/go-aojia"
	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/variant"
)

func versionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client and automation object versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "client  %s\n", aojia.Version)
			return withClient(flags, func(c *aojia.Client) error {
				ver, err := c.VerS()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "object  %s\n", ver)
				return nil
			})
		},
	}
}

func machineCodeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "machine-code",
		Short: "Print the machine code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(c *aojia.Client) error {
				code, err := c.GetMachineCode()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			})
		},
	}
}

func osCmd(flags *globalFlags) *cobra.Command {
	var typ int32
	cmd := &cobra.Command{
		Use:   "os",
		Short: "Print operating system information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(c *aojia.Client) error {
				ret, info, err := c.GetOs(typ)
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "result\t%d\n", ret)
				fmt.Fprintf(w, "version\t%s\n", info.Version)
				fmt.Fprintf(w, "version number\t%s\n", info.VersionNum)
				fmt.Fprintf(w, "build\t%d\n", info.BuildNumber)
				fmt.Fprintf(w, "system dir\t%s\n", info.SystemDir)
				w.Flush()
				return err
			})
		},
	}
	cmd.Flags().Int32Var(&typ, "type", 0, "query type passed to GetOs")
	return cmd
}

func cpuCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cpu",
		Short: "Print the processor type and id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(c *aojia.Client) error {
				ret, typ, id, err := c.GetCPU()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "result\t%d\n", ret)
				fmt.Fprintf(w, "type\t%s\n", typ)
				fmt.Fprintf(w, "id\t%s\n", id)
				return w.Flush()
			})
		},
	}
}

func methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the declared method signatures",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range aojia.Signatures() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
		},
	}
}

func callCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "call METHOD [ARG...]",
		Short: "Call a method by name",
		Long: `Call a method by name.

For a declared method (see "methods") ARGs are the input parameters in
order and are converted to the declared types; out parameters are added
automatically. For any other method each ARG is a literal:

  42, -7          integer
  0.85            float
  true, false     boolean
  null            null
  "text", text    string
  out:, out:name  out parameter ("&" and "&name" also work when quoted,
                  e.g. '&color')`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(c *aojia.Client) error {
				return runCall(cmd.OutOrStdout(), c, args[0], args[1:])
			})
		},
	}
}

// runCall performs one call and prints the result and every out value.
func runCall(w io.Writer, c *aojia.Client, method string, args []string) error {
	if sig, ok := aojia.LookupSignature(method); ok {
		in := make([]interface{}, len(args))
		for i, a := range args {
			in[i] = a
		}
		res, err := c.CallSignature(sig, in...)
		if err != nil {
			return err
		}
		printResult(w, res.Value, sig.Params, res.Args)
		return nil
	}

	params, err := parseArgs(args)
	if err != nil {
		return err
	}
	call, err := c.Call(method, params...)
	if err != nil {
		return err
	}
	ret, _ := call.Result()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "result\t%s\n", ret)
	for _, name := range call.OutNames() {
		fmt.Fprintf(tw, "%s\t%s\n", name, call.Out(name))
	}
	return tw.Flush()
}

func printResult(w io.Writer, ret variant.Value, params []dispatch.ParamSpec, args *dispatch.ArgList) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "result\t%s\n", ret)
	for _, p := range params {
		if p.Dir == dispatch.Out {
			fmt.Fprintf(tw, "%s\t%s\n", p.Name, args.Out(p.Name))
		}
	}
	tw.Flush()
}
