// Package output renders extraction records in table, JSON or CSV form.
// A writer is chosen once per run and records are streamed through it;
// Flush completes the rendering.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// Format names accepted by the CLI.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ContentWriter renders content records.
type ContentWriter interface {
	Write(dtsx.ContentRecord) error
	Flush() error
}

// SQLWriter renders SQL records.
type SQLWriter interface {
	Write(dtsx.SQLRecord) error
	Flush() error
}

// NewContentWriter returns the writer for the requested format name.
func NewContentWriter(format string, w io.Writer) (ContentWriter, error) {
	switch format {
	case FormatTable:
		return newContentTable(w), nil
	case FormatJSON:
		return &jsonWriter[dtsx.ContentRecord]{w: w}, nil
	case FormatCSV:
		return newContentCSV(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// NewSQLWriter returns the writer for the requested format name.
func NewSQLWriter(format string, w io.Writer) (SQLWriter, error) {
	switch format {
	case FormatTable:
		return newSQLTable(w), nil
	case FormatJSON:
		return &jsonWriter[dtsx.SQLRecord]{w: w}, nil
	case FormatCSV:
		return newSQLCSV(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// jsonWriter accumulates records and flushes them as one indented array,
// so the output is a single well-formed JSON document.
type jsonWriter[T any] struct {
	w    io.Writer
	recs []T
}

func (j *jsonWriter[T]) Write(rec T) error {
	j.recs = append(j.recs, rec)
	return nil
}

func (j *jsonWriter[T]) Flush() error {
	if j.recs == nil {
		j.recs = []T{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.recs)
}

type contentTable struct {
	tw *tabwriter.Writer
}

func newContentTable(w io.Writer) *contentTable {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCATEGORY\tTASK\tTYPE\tNAME")
	return &contentTable{tw: tw}
}

func (t *contentTable) Write(rec dtsx.ContentRecord) error {
	_, err := fmt.Fprintf(t.tw, "%s\t%s\t%s\t%s\t%s\n",
		rec.File, rec.Category, rec.TaskName, rec.ComponentType, rec.ComponentName)
	return err
}

func (t *contentTable) Flush() error { return t.tw.Flush() }

type sqlTable struct {
	tw *tabwriter.Writer
}

func newSQLTable(w io.Writer) *sqlTable {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTASK\tTYPE\tNAME\tSQL")
	return &sqlTable{tw: tw}
}

func (t *sqlTable) Write(rec dtsx.SQLRecord) error {
	_, err := fmt.Fprintf(t.tw, "%s\t%s\t%s\t%s\t%s\n",
		rec.File, rec.TaskName, rec.ComponentType, rec.ComponentName, oneLine(rec.SQL))
	return err
}

func (t *sqlTable) Flush() error { return t.tw.Flush() }

type contentCSV struct {
	cw     *csv.Writer
	header bool
}

func newContentCSV(w io.Writer) *contentCSV {
	return &contentCSV{cw: csv.NewWriter(w)}
}

func (c *contentCSV) Write(rec dtsx.ContentRecord) error {
	if !c.header {
		c.header = true
		if err := c.cw.Write([]string{"file", "category", "task_name", "component_type", "component_name"}); err != nil {
			return err
		}
	}
	return c.cw.Write([]string{rec.File, string(rec.Category), rec.TaskName, rec.ComponentType, rec.ComponentName})
}

func (c *contentCSV) Flush() error {
	c.cw.Flush()
	return c.cw.Error()
}

type sqlCSV struct {
	cw     *csv.Writer
	header bool
}

func newSQLCSV(w io.Writer) *sqlCSV {
	return &sqlCSV{cw: csv.NewWriter(w)}
}

func (c *sqlCSV) Write(rec dtsx.SQLRecord) error {
	if !c.header {
		c.header = true
		if err := c.cw.Write([]string{"file", "task_name", "component_type", "component_name", "sql"}); err != nil {
			return err
		}
	}
	return c.cw.Write([]string{rec.File, rec.TaskName, rec.ComponentType, rec.ComponentName, rec.SQL})
}

func (c *sqlCSV) Flush() error {
	c.cw.Flush()
	return c.cw.Error()
}

// oneLine collapses statement whitespace so multi-line SQL stays on one
// table row. JSON and CSV output keep the text verbatim.
func oneLine(s string) string {
	out := make([]byte, 0, len(s))
	space := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n', '\r', '\t':
			space = true
		case ' ':
			space = true
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, s[i])
		}
	}
	return string(out)
}
