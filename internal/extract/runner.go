package extract

import (
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// ContentSink receives content records as they are produced. Returning an
// error stops the run; records are never buffered across files.
type ContentSink func(dtsx.ContentRecord) error

// SQLSink receives SQL records as they are produced.
type SQLSink func(dtsx.SQLRecord) error

// Summary reports what a run did across its input batch.
type Summary struct {
	Files   int // files fully processed
	Skipped int // wrong extension or unsupported format version
	Failed  int // malformed XML
	Records int
}

// Runner walks a batch of package files and streams extraction records.
// One malformed or unsupported file never aborts the batch: parse
// failures are reported and counted, unsupported files are skipped with a
// diagnostic notice, and processing continues with the next file.
type Runner struct {
	Log     *log.Logger       // diagnostics; defaults to the stdlib default logger
	Verbose bool              // log per-file skip notices
	OnFile  func(path string) // called after each path is handled
}

// Content runs content extraction over paths, gated by the category
// filter, and streams each record to sink.
func (r *Runner) Content(paths []string, filter Filter, sink ContentSink) (Summary, error) {
	return r.run(paths, func(doc *dtsx.Document, adapter dtsx.SchemaAdapter) (int, error) {
		return contentPasses(doc.Path(), adapter, filter, sink)
	})
}

// SQL runs SQL extraction over paths, gated by the component-type filter,
// and streams each record to sink.
func (r *Runner) SQL(paths []string, filter Filter, sink SQLSink) (Summary, error) {
	return r.run(paths, func(doc *dtsx.Document, adapter dtsx.SchemaAdapter) (int, error) {
		return sqlPasses(doc.Path(), adapter, filter, sink)
	})
}

// run is the shared per-file skeleton both record shapes go through:
// existence pre-check, extension gate, parse, version dispatch, passes.
func (r *Runner) run(paths []string, visit func(*dtsx.Document, dtsx.SchemaAdapter) (int, error)) (Summary, error) {
	var sum Summary
	// Fail fast on missing inputs before any file is opened.
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return sum, fmt.Errorf("input path %s: %w", path, err)
		}
	}
	for _, path := range paths {
		if !dtsx.IsPackagePath(path) {
			sum.Skipped++
			r.verbosef("skipping %s: not a %s file", path, dtsx.Extension)
			r.fileDone(path)
			continue
		}
		doc, err := dtsx.Load(path)
		if err != nil {
			sum.Failed++
			r.logf("cannot parse %s: %v", path, err)
			r.fileDone(path)
			continue
		}
		adapter, err := doc.Adapter()
		if err != nil {
			sum.Skipped++
			r.verbosef("skipping %s: unsupported package format version", path)
			r.fileDone(path)
			continue
		}
		n, err := visit(doc, adapter)
		sum.Records += n
		if err != nil {
			// Sink errors mean the consumer stopped reading; the run
			// halts at this yield point.
			return sum, err
		}
		sum.Files++
		r.fileDone(path)
	}
	return sum, nil
}

func (r *Runner) fileDone(path string) {
	if r.OnFile != nil {
		r.OnFile(path)
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (r *Runner) verbosef(format string, args ...any) {
	if r.Verbose {
		r.logf(format, args...)
	}
}

// contentPasses runs each requested category pass against one document.
func contentPasses(file string, adapter dtsx.SchemaAdapter, filter Filter, sink ContentSink) (int, error) {
	n := 0
	emit := func(rec dtsx.ContentRecord) error {
		n++
		return sink(rec)
	}
	if filter.Matches(string(dtsx.CategoryTask)) {
		for _, t := range adapter.Tasks() {
			if err := emit(taskContent(file, t)); err != nil {
				return n, err
			}
		}
	}
	if filter.Matches(string(dtsx.CategoryVariable)) {
		for _, v := range adapter.Variables() {
			if err := emit(variableContent(file, v)); err != nil {
				return n, err
			}
		}
	}
	if filter.Matches(string(dtsx.CategoryConfiguration)) {
		for _, c := range adapter.Configurations() {
			if err := emit(configurationContent(file, c)); err != nil {
				return n, err
			}
		}
	}
	if filter.Matches(string(dtsx.CategoryConnection)) {
		for _, c := range adapter.Connections() {
			if err := emit(connectionContent(file, c)); err != nil {
				return n, err
			}
		}
	}
	if filter.Matches(string(dtsx.CategoryComponent)) {
		for _, c := range adapter.Components() {
			if err := emit(componentContent(file, c)); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// sqlPasses runs SQL extraction against one document. Only entities whose
// classified type is in the SQL-bearing vocabulary can match; a matched
// entity missing its statement text still emits, with an empty SQL field.
func sqlPasses(file string, adapter dtsx.SchemaAdapter, filter Filter, sink SQLSink) (int, error) {
	n := 0
	emit := func(rec dtsx.SQLRecord) error {
		n++
		return sink(rec)
	}
	if filter.Matches(dtsx.TypeExecuteSQLTask) {
		for _, t := range adapter.Tasks() {
			if dtsx.ClassifyTask(t) != dtsx.TypeExecuteSQLTask {
				continue
			}
			if err := emit(taskSQL(file, t)); err != nil {
				return n, err
			}
		}
	}
	if filter.Matches(dtsx.TypeVariable) {
		for _, v := range adapter.Variables() {
			if err := emit(variableSQL(file, v)); err != nil {
				return n, err
			}
		}
	}
	sqlComponent := sqlComponentTypes()
	for _, c := range adapter.Components() {
		label := dtsx.ClassifyComponent(c.Contact, c.Description, c.Name)
		if !sqlComponent[label] || !filter.Matches(label) {
			continue
		}
		if err := emit(componentSQL(file, c, label)); err != nil {
			return n, err
		}
	}
	return n, nil
}

// sqlComponentTypes returns the data-flow subset of the SQL vocabulary.
func sqlComponentTypes() map[string]bool {
	return map[string]bool{
		dtsx.TypeOLEDBSource:      true,
		dtsx.TypeOLEDBDestination: true,
		dtsx.TypeOLEDBCommand:     true,
		dtsx.TypeLookup:           true,
	}
}
