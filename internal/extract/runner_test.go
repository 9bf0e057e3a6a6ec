package extract

// Test Plan for the extraction runner:
// - wrong-extension inputs yield zero records and are never parsed
// - unknown-version packages yield zero records with a skip count
// - malformed XML fails that file but the batch continues
// - a single Execute SQL Task extracts exactly one SQL record with the
//   task name, type label and statement text
// - the component-name fallback reaches the record ("SCD1")
// - configuration type labels land on the record
// - filter "All" equals the full category list, and runs are idempotent
// - a sink error stops the run
// - missing input paths fail before any file is read

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

const execSQLPackage = `<?xml version="1.0"?>
<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts" DTS:ExecutableType="SSIS.Package.2">
  <DTS:Property DTS:Name="PackageFormatVersion">3</DTS:Property>
  <DTS:Property DTS:Name="ObjectName">SingleTask</DTS:Property>
  <DTS:Executable DTS:ExecutableType="Microsoft.SqlServer.Dts.Tasks.ExecuteSQLTask.ExecuteSQLTask">
    <DTS:Property DTS:Name="ObjectName">Rebuild index</DTS:Property>
    <DTS:Property DTS:Name="Description">Execute SQL Task</DTS:Property>
    <DTS:Property DTS:Name="CreationName">Microsoft.SqlServer.Dts.Tasks.ExecuteSQLTask.ExecuteSQLTask, Microsoft.SqlServer.SQLTask</DTS:Property>
    <DTS:ObjectData>
      <SQLTask:SqlTaskData xmlns:SQLTask="www.microsoft.com/sqlserver/dts/tasks/sqltask" SQLTask:SqlStatementSource="ALTER INDEX ALL ON dbo.Orders REBUILD"/>
    </DTS:ObjectData>
  </DTS:Executable>
</DTS:Executable>`

const fallbackPackage = `<?xml version="1.0"?>
<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts" DTS:ExecutableType="SSIS.Package.2">
  <DTS:Property DTS:Name="PackageFormatVersion">3</DTS:Property>
  <DTS:Configuration>
    <DTS:Property DTS:Name="ObjectName">EnvConfig</DTS:Property>
    <DTS:Property DTS:Name="ConfigurationType">2</DTS:Property>
    <DTS:Property DTS:Name="ConfigurationString">CONN</DTS:Property>
  </DTS:Configuration>
  <DTS:Configuration>
    <DTS:Property DTS:Name="ObjectName">OddConfig</DTS:Property>
    <DTS:Property DTS:Name="ConfigurationType">99</DTS:Property>
    <DTS:Property DTS:Name="ConfigurationString">?</DTS:Property>
  </DTS:Configuration>
  <DTS:Executable DTS:ExecutableType="SSIS.Pipeline.2">
    <DTS:Property DTS:Name="ObjectName">Flow</DTS:Property>
    <DTS:Property DTS:Name="Description">Data Flow Task</DTS:Property>
    <DTS:Property DTS:Name="CreationName">SSIS.Pipeline.2</DTS:Property>
    <DTS:ObjectData>
      <pipeline>
        <components>
          <component name="SCD1" description="" contactInfo="">
            <properties/>
          </component>
        </components>
      </pipeline>
    </DTS:ObjectData>
  </DTS:Executable>
</DTS:Executable>`

const unknownVersionPackage = `<?xml version="1.0"?>
<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts">
  <DTS:Property DTS:Name="PackageFormatVersion">42</DTS:Property>
</DTS:Executable>`

// writeFile drops content into dir under name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietRunner() *Runner {
	return &Runner{Log: log.New(io.Discard, "", 0)}
}

func collectContent(t *testing.T, r *Runner, paths []string, filter Filter) ([]dtsx.ContentRecord, Summary) {
	t.Helper()
	var recs []dtsx.ContentRecord
	sum, err := r.Content(paths, filter, func(rec dtsx.ContentRecord) error {
		recs = append(recs, rec)
		return nil
	})
	require.NoError(t, err)
	return recs, sum
}

func TestWrongExtensionSkipped(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// Deliberately invalid XML: if the runner ever tried to parse it,
	// the failure counter would show it.
	path := writeFile(t, dir, "not_a_package.xml", "<<< not xml >>>")

	recs, sum := collectContent(t, quietRunner(), []string{path}, NewFilter(nil))
	assert.Empty(t, recs)
	assert.Equal(t, Summary{Skipped: 1}, sum)
}

func TestUnknownVersionSkipped(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "future.dtsx", unknownVersionPackage)

	recs, sum := collectContent(t, quietRunner(), []string{path}, NewFilter(nil))
	assert.Empty(t, recs)
	assert.Equal(t, 1, sum.Skipped)
}

func TestMalformedFileDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := writeFile(t, dir, "broken.dtsx", "<DTS:Executable><unclosed")
	good := writeFile(t, dir, "good.dtsx", execSQLPackage)

	recs, sum := collectContent(t, quietRunner(), []string{bad, good}, NewFilter(nil))
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Files)
	require.Len(t, recs, 1)
	assert.Equal(t, good, recs[0].File)
}

func TestSingleExecuteSQLTask(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "single.dtsx", execSQLPackage)

	var recs []dtsx.SQLRecord
	sum, err := quietRunner().SQL([]string{path}, NewFilter([]string{dtsx.TypeExecuteSQLTask}), func(rec dtsx.SQLRecord) error {
		recs = append(recs, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Records)
	require.Len(t, recs, 1)
	assert.Equal(t, "Rebuild index", recs[0].TaskName)
	assert.Equal(t, "Execute SQL Task", recs[0].ComponentType)
	assert.Equal(t, "ALTER INDEX ALL ON dbo.Orders REBUILD", recs[0].SQL)
}

func TestComponentNameFallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "fallback.dtsx", fallbackPackage)

	recs, _ := collectContent(t, quietRunner(), []string{path}, NewFilter([]string{string(dtsx.CategoryComponent)}))
	require.Len(t, recs, 1)
	assert.Equal(t, "SCD1", recs[0].ComponentType)
	assert.Equal(t, "SCD1", recs[0].ComponentName)
}

func TestConfigurationTypeLabels(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "configs.dtsx", fallbackPackage)

	recs, _ := collectContent(t, quietRunner(), []string{path}, NewFilter([]string{string(dtsx.CategoryConfiguration)}))
	require.Len(t, recs, 2)
	labels := map[string]string{}
	for _, rec := range recs {
		labels[rec.ComponentName] = rec.ComponentType
	}
	assert.Equal(t, "Environment variable", labels["EnvConfig"])
	assert.Equal(t, "Unknown 99", labels["OddConfig"])
}

func TestAllFilterEqualsFullList(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "full.dtsx", fallbackPackage)

	full := make([]string, 0, len(dtsx.Categories()))
	for _, c := range dtsx.Categories() {
		full = append(full, string(c))
	}

	allRecs, _ := collectContent(t, quietRunner(), []string{path}, NewFilter([]string{FilterAll}))
	listRecs, _ := collectContent(t, quietRunner(), []string{path}, NewFilter(full))
	assert.Equal(t, allRecs, listRecs)
}

func TestExtractionIsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "stable.dtsx", fallbackPackage)

	first, _ := collectContent(t, quietRunner(), []string{path}, NewFilter(nil))
	second, _ := collectContent(t, quietRunner(), []string{path}, NewFilter(nil))
	assert.Equal(t, first, second)
}

func TestSinkErrorStopsRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "single.dtsx", execSQLPackage)
	other := writeFile(t, dir, "other.dtsx", execSQLPackage)

	stop := errors.New("consumer gone")
	calls := 0
	_, err := quietRunner().Content([]string{path, other}, NewFilter(nil), func(dtsx.ContentRecord) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestMissingPathFailsFast(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := writeFile(t, dir, "good.dtsx", execSQLPackage)
	missing := filepath.Join(dir, "no_such.dtsx")

	processed := 0
	_, err := quietRunner().Content([]string{good, missing}, NewFilter(nil), func(dtsx.ContentRecord) error {
		processed++
		return nil
	})
	assert.Error(t, err)
	assert.Zero(t, processed, "validation runs before any file is opened")
}

func TestVerboseSkipNotice(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "hello")

	var buf bytes.Buffer
	r := &Runner{Log: log.New(&buf, "", 0), Verbose: true}
	_, err := r.Content([]string{path}, NewFilter(nil), func(dtsx.ContentRecord) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "not a .dtsx file")
}

func ExampleRunner_SQL() {
	// Extract every Execute SQL Task statement from a package batch.
	dir, _ := os.MkdirTemp("", "dtxscan")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "single.dtsx")
	os.WriteFile(path, []byte(execSQLPackage), 0o644)

	r := &Runner{Log: log.New(io.Discard, "", 0)}
	r.SQL([]string{path}, NewFilter(nil), func(rec dtsx.SQLRecord) error {
		fmt.Printf("%s: %s\n", rec.TaskName, rec.SQL)
		return nil
	})
	// Output:
	// Rebuild index: ALTER INDEX ALL ON dbo.Orders REBUILD
}
