package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

// Text renders fragments grouped by paragraph, followed by the final
// alignment and any diagnostics.
func Text(out Output) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "system: %s\n", out.System)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	paragraph := -1
	for _, f := range out.Fragments {
		if f.Paragraph != paragraph {
			paragraph = f.Paragraph
			tw.Flush()
			fmt.Fprintf(&buf, "\nparagraph %d\n", paragraph+1)
		}
		fmt.Fprintf(tw, "  %s\t%s\tregion %d\t%q\n", f.Span.Start, f.Align, f.Region, f.Text)
	}
	tw.Flush()

	fmt.Fprintf(&buf, "\nfinal: %s\n", out.Final)
	if len(out.Diagnostics) > 0 {
		fmt.Fprintf(&buf, "\n%d diagnostic(s)\n", len(out.Diagnostics))
		for _, d := range out.Diagnostics {
			fmt.Fprintf(&buf, "  %s\n", d)
		}
	}
	return buf.Bytes()
}

// JSON renders out as indented JSON.
func JSON(out Output) ([]byte, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
