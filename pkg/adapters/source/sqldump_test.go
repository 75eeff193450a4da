package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
)

const sampleDump = `
CREATE TABLE invoices (
  id INT NOT NULL,
  customer_id INT,
  PRIMARY KEY (id),
  CONSTRAINT fk_customer FOREIGN KEY (customer_id)
    REFERENCES customers (id)
);

CREATE TABLE order_items (
  order_id INT,
  product_id INT,
  PRIMARY KEY (` + "`order_id`, `product_id`" + `)
);
`

func TestSQLDumpDeclaredKeys(t *testing.T) {
	path := writeFile(t, "schema.sql", []byte(sampleDump))

	table, err := New("schema.sql", path, FormatSQL).Load(context.Background())

	require.NoError(t, err)
	assert.Zero(t, table.RowCount)
	assert.Empty(t, table.Columns)
	assert.Equal(t, []string{"id", "order_id", "product_id"}, table.DeclaredPrimaryKeys)
	assert.Equal(t, []string{"customer_id"}, table.DeclaredForeignKeys)
}

func TestSQLDumpCaseInsensitive(t *testing.T) {
	path := writeFile(t, "schema.sql", []byte(`create table t (a int, primary key (a));`))

	table, err := New("schema.sql", path, FormatSQL).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, table.DeclaredPrimaryKeys)
}

func TestSQLDumpNoKeys(t *testing.T) {
	path := writeFile(t, "schema.sql", []byte(`CREATE TABLE t (a INT);`))

	table, err := New("schema.sql", path, FormatSQL).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, table.DeclaredPrimaryKeys)
	assert.Empty(t, table.DeclaredForeignKeys)
}

func TestSQLDumpMissingFile(t *testing.T) {
	_, err := New("gone.sql", "/nonexistent/gone.sql", FormatSQL).Load(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrSourceUnreadable)
}
