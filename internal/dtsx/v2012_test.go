package dtsx

// Test Plan for the 2012+ schema adapter:
// - entity fields come from DTS attributes instead of child properties
// - variable lookup enumerates non-System variables and keeps only those
//   with a non-empty expression attribute
// - connection managers and configurations are found under their
//   container elements
// - pipeline component resolution matches the 2008 path, including the
//   owning-task ancestor walk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load2012(t *testing.T) SchemaAdapter {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "nightly_load_2016.dtsx"))
	require.NoError(t, err)
	require.Equal(t, V2012Plus, doc.Version())
	adapter, err := doc.Adapter()
	require.NoError(t, err)
	return adapter
}

func TestV2012Tasks(t *testing.T) {
	t.Parallel()
	adapter := load2012(t)

	tasks := adapter.Tasks()
	require.Len(t, tasks, 2)

	byName := make(map[string]Task, len(tasks))
	for _, task := range tasks {
		byName[task.Name] = task
	}

	sql := byName["Stage orders"]
	assert.Equal(t, "Execute SQL Task", sql.Description)
	assert.Equal(t, "Microsoft.ExecuteSQLTask", sql.Contact)
	assert.Equal(t, "EXEC dw.LoadOrders @BatchId = ?", sql.SQL)

	flow := byName["Load Orders"]
	assert.Equal(t, "Data Flow Task", flow.Description)
	assert.Empty(t, flow.SQL)
}

func TestV2012Variables(t *testing.T) {
	t.Parallel()
	adapter := load2012(t)

	vars := adapter.Variables()
	// StartTime is System-namespaced, BatchId has no expression.
	require.Len(t, vars, 1)
	assert.Equal(t, "User::LoadQuery", vars[0].QualifiedName())
	assert.Contains(t, vars[0].Expression, "SELECT OrderId FROM dbo.Orders")
}

func TestV2012Connections(t *testing.T) {
	t.Parallel()
	adapter := load2012(t)

	conns := adapter.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, Connection{Name: "Warehouse", CreationName: "OLEDB"}, conns[0])
}

func TestV2012Configurations(t *testing.T) {
	t.Parallel()
	adapter := load2012(t)

	configs := adapter.Configurations()
	require.Len(t, configs, 1)
	assert.Equal(t, "LegacyConfig", configs[0].Name)
	assert.True(t, configs[0].HasType)
	assert.Equal(t, 99, configs[0].Type)
}

func TestV2012Components(t *testing.T) {
	t.Parallel()
	adapter := load2012(t)

	comps := adapter.Components()
	require.Len(t, comps, 2)

	byName := make(map[string]Component, len(comps))
	for _, comp := range comps {
		byName[comp.Name] = comp
	}

	lookup := byName["Lookup Customer"]
	assert.Equal(t, "Load Orders", lookup.TaskName)
	assert.Equal(t, "SELECT CustomerId, Name FROM dbo.Customers", lookup.SQL)

	cmd := byName["Update Amounts"]
	assert.Equal(t, "UPDATE dw.FactOrders SET Amount = ? WHERE OrderId = ?", cmd.SQL)
}
