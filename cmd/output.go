package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
)

// stdout is where commands print their result.
var stdout io.Writer = os.Stdout

// printMarkdown renders md for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

// printJSON prints v as indented JSON. When query is not empty it is a
// JSONPath expression and only the selected value is printed.
func printJSON(v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if query != "" {
		if out, err = jsonpath.Get(query, out); err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
