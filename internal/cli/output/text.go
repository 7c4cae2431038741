package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// TextFormatter prints data for humans.
//
// A Result prints its response (or "(error) <message>"), a string map
// prints as aligned key/value rows, and anything else uses fmt.
type TextFormatter struct{}

// Format implements Formatter.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case Result:
		return writeResult(w, v)
	case *Result:
		return writeResult(w, *v)
	case map[string]string:
		return writeFields(w, v)
	case []byte:
		return writeLine(w, string(v))
	case string:
		return writeLine(w, v)
	default:
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
}

func writeResult(w io.Writer, r Result) error {
	if r.Error != "" {
		_, err := fmt.Fprintf(w, "(error) %s\n", r.Error)
		return err
	}
	return writeLine(w, r.Response)
}

// writeLine writes s and a trailing newline unless s already ends in one.
func writeLine(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeFields(w io.Writer, fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, fields[k])
	}
	return tw.Flush()
}
