package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neunenak/typst/pkg/pipeline"
)

// alignOpts holds the command-line flags for the align command.
type alignOpts struct {
	req    pipeline.AlignRequest
	asJSON bool
}

// alignCommand creates the align command, which evaluates a single align
// call without a document.
func (c *CLI) alignCommand() *cobra.Command {
	var opts alignOpts

	cmd := &cobra.Command{
		Use:   "align [value]...",
		Short: "Evaluate one align call and show the resolved alignment",
		Example: `  typst align left bottom
  typst align center --vertical top --lang ar
  typst align --horizontal right --body --previous center,start`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.req.Values = args
			if opts.req.Lang == "" {
				opts.req.Lang = c.Config.Lang
			}
			return c.runAlign(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.req.Horizontal, "horizontal", "", "value for the horizontal keyword argument")
	cmd.Flags().StringVar(&opts.req.Vertical, "vertical", "", "value for the vertical keyword argument")
	cmd.Flags().StringVarP(&opts.req.Lang, "lang", "l", "", "document language (BCP 47), defaults to TYPST_LANG")
	cmd.Flags().StringVar(&opts.req.Primary, "primary", "", "override the primary direction: ltr, rtl, ttb, btt")
	cmd.Flags().StringVar(&opts.req.Secondary, "secondary", "", "override the secondary direction: ltr, rtl, ttb, btt")
	cmd.Flags().StringVar(&opts.req.Previous, "previous", "", `alignment in effect before the call, as "primary,secondary"`)
	cmd.Flags().BoolVar(&opts.req.Body, "body", false, "attach an empty body so the alignment is scoped")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runAlign(ctx context.Context, opts alignOpts) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	res, err := runner.EvaluateAlign(ctx, opts.req)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printKeyValue("system", res.System.String())
	printKeyValue("previous", res.Previous.String())
	printKeyValue("resolved", StyleHighlight.Render(res.Resolved.String()))
	printKeyValue("commands", res.Commands.String())
	for _, d := range res.Diagnostics {
		printDiagnostic("", d)
	}
	if n := countErrors(res.Diagnostics); n > 0 {
		return fmt.Errorf("%d error(s)", n)
	}
	return nil
}
