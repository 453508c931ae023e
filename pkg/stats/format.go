package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLabel is the token printed in front of the change ratio.
const DefaultLabel = "変化率"

// Output formats.
const (
	FormatList  = "list"
	FormatArray = "array"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatXLSX  = "xlsx"
)

var Formats = []string{FormatList, FormatArray, FormatTable, FormatJSON, FormatXLSX}

func IsFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// Render formats an entry as "<prefecture>:<popu10>=><popu15> <label>:<change>".
// The ratio is printed unrounded.
func Render(e RankingEntry, label string) string {
	return e.Prefecture + ":" + formatNumber(e.Stats.Popu10) + "=>" + formatNumber(e.Stats.Popu15) +
		" " + label + ":" + formatNumber(e.Stats.Change)
}

// RenderAll renders every entry, keeping order.
func RenderAll(entries []RankingEntry, label string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, Render(e, label))
	}
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Write renders the report in the given text format and writes it to w in a
// single call. The xlsx format is not a text format, see SaveXLSX.
func Write(w io.Writer, r *Report, format, label string) error {
	if label == "" {
		label = DefaultLabel
	}

	var buf bytes.Buffer
	switch format {
	case FormatList, "":
		for _, s := range RenderAll(r.Entries, label) {
			buf.WriteString(s)
			buf.WriteByte('\n')
		}
	case FormatArray:
		writeArray(&buf, RenderAll(r.Entries, label))
	case FormatTable:
		writeTable(&buf, r, label)
	case FormatJSON:
		js, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode report: %w", err)
		}
		buf.Write(js)
		buf.WriteByte('\n')
	default:
		return fmt.Errorf("unsupported text format '%s'", format)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeArray prints the rendered strings as one bracketed list of quoted
// items, one item per line.
func writeArray(buf *bytes.Buffer, items []string) {
	if len(items) == 0 {
		buf.WriteString("[]\n")
		return
	}
	buf.WriteString("[\n")
	for i, s := range items {
		buf.WriteString("  '")
		buf.WriteString(strings.ReplaceAll(s, "'", "\\'"))
		buf.WriteString("'")
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
}

func writeTable(buf *bytes.Buffer, r *Report, label string) {
	// Locale number printer.
	p := message.NewPrinter(language.English)

	p.Fprintf(buf, "Population by Prefecture (%d => %d)\n\n", r.Years.Earlier, r.Years.Later)
	for i, e := range r.Entries {
		p.Fprintf(buf, "%02d. %-15s  %12.f => %12.f  %s: %s\n",
			i+1, e.Prefecture,
			e.Stats.Popu10, e.Stats.Popu15,
			label, formatNumber(e.Stats.Change),
		)
	}
}
