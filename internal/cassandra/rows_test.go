package cassandra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcql/robotcql/internal/errs"
)

func TestRow_Column(t *testing.T) {
	row := Row{
		"keyspace_name": "system",
		"durable":       true,
		"replication":   3,
		"comment":       nil,
		"blob":          []byte("raw"),
	}

	tests := []struct {
		name   string
		column string
		want   string
	}{
		{name: "string value", column: "keyspace_name", want: "system"},
		{name: "bool value", column: "durable", want: "true"},
		{name: "int value", column: "replication", want: "3"},
		{name: "nil value", column: "comment", want: ""},
		{name: "bytes value", column: "blob", want: "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := row.Column(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRow_ColumnMissing(t *testing.T) {
	row := Row{"keyspace_name": "system"}

	_, err := row.Column("table_name")
	require.Error(t, err)
	assert.True(t, errs.IsColumnNotFound(err))
}

func TestProjectColumn(t *testing.T) {
	rows := Rows{
		{"keyspace_name": "test", "durable_writes": true},
		{"keyspace_name": "OpsCenter", "durable_writes": false},
	}

	values, err := ProjectColumn("keyspace_name", rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"test", "OpsCenter"}, values)
}

func TestProjectColumn_PreservesLengthAndOrder(t *testing.T) {
	rows := Rows{
		{"id": 3},
		{"id": 1},
		{"id": 2},
	}

	values, err := ProjectColumn("id", rows)
	require.NoError(t, err)
	assert.Len(t, values, len(rows))
	assert.Equal(t, []string{"3", "1", "2"}, values)
}

func TestProjectColumn_EmptyInput(t *testing.T) {
	values, err := ProjectColumn("anything", Rows{})
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestProjectColumn_MissingColumn(t *testing.T) {
	rows := Rows{
		{"keyspace_name": "test"},
		{"table_name": "users"}, // second row lacks the projected column
	}

	_, err := ProjectColumn("keyspace_name", rows)
	require.Error(t, err)
	assert.True(t, errs.IsColumnNotFound(err))
}
