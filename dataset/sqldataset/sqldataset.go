/*
Package sqldataset provides an implementation of dataset.Reader and
dataset.Writer that uses an SQL database as backend.

The dataset uses 2 database tables:
  * descriptor, with a single row holding the number of classes
    and features of the dataset
  * instances, with a row per instance holding an autoincremented
    id, its class and a column per feature value (f0, f1, ...)

Instances are read back in id order, that is, in the order they
were written.
*/
package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/sapling/dataset"
)

/*
Adapter is an interface providing the database specific
pieces needed to store a dataset on it.
*/
type Adapter interface {
	// DB returns the database handle to work on
	DB() *sql.DB
	// Placeholder returns the bind parameter for the nth
	// (starting at 1) value of a statement
	Placeholder(n int) string
	// IDColumnDefinition returns the column definition
	// for an autoincremented integer primary key
	IDColumnDefinition() string
	// Close releases the database handle
	Close() error
}

/*
MaxInstanceInsertionsPerStatement is the maximum number of instances
inserted with a single insert command. Writing more results in more
insertion commands.
*/
const MaxInstanceInsertionsPerStatement = 10

/*
Store is a dataset.Reader and dataset.Writer backed by an Adapter.
*/
type Store struct {
	db Adapter
}

/*
New takes an Adapter and returns a Store working on it.
*/
func New(a Adapter) *Store {
	return &Store{a}
}

/*
Close closes the underlying adapter.
*/
func (s *Store) Close() error {
	return s.db.Close()
}

/*
Read takes a context and returns the dataset stored on the database or an
error if it cannot be read or is not valid.
*/
func (s *Store) Read(ctx context.Context) (*dataset.Dataset, error) {
	d := &dataset.Dataset{}
	row := s.db.DB().QueryRowContext(ctx, `SELECT num_classes, num_features FROM descriptor`)
	err := row.Scan(&d.NumClasses, &d.NumFeatures)
	if err != nil {
		return nil, fmt.Errorf("reading dataset descriptor: %v", err)
	}
	if d.NumClasses <= 0 || d.NumFeatures <= 0 {
		return nil, fmt.Errorf("invalid descriptor: %d classes, %d features", d.NumClasses, d.NumFeatures)
	}
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString(`SELECT class_label`)
	for f := 0; f < d.NumFeatures; f++ {
		queryBuffer.WriteString(fmt.Sprintf(`, "%s"`, featureColumn(f)))
	}
	queryBuffer.WriteString(` FROM instances ORDER BY id`)
	rows, err := s.db.DB().QueryContext(ctx, queryBuffer.String())
	if err != nil {
		return nil, fmt.Errorf("querying instances: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var class int
		values := make([]float64, d.NumFeatures)
		dest := make([]interface{}, 0, d.NumFeatures+1)
		dest = append(dest, &class)
		for f := range values {
			dest = append(dest, &values[f])
		}
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning instance %d: %v", len(d.Instances)+1, err)
		}
		d.Instances = append(d.Instances, dataset.NewInstance(class, values))
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("reading instances: %v", err)
	}
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
Write takes a context and a dataset and replaces whatever dataset the
database held with it, in a single transaction.
*/
func (s *Store) Write(ctx context.Context, d *dataset.Dataset) error {
	err := d.Validate()
	if err != nil {
		return err
	}
	tx, err := s.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	err = s.write(ctx, tx, d)
	if err != nil {
		tx.Rollback()
		return err
	}
	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("committing dataset: %v", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, tx *sql.Tx, d *dataset.Dataset) error {
	for _, stmt := range []string{`DROP TABLE IF EXISTS descriptor`, `DROP TABLE IF EXISTS instances`} {
		_, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("dropping previous dataset: %v", err)
		}
	}
	_, err := tx.ExecContext(ctx, `CREATE TABLE descriptor (num_classes INTEGER NOT NULL, num_features INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating descriptor table: %v", err)
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO descriptor (num_classes, num_features) VALUES (%s, %s)`, s.db.Placeholder(1), s.db.Placeholder(2)), d.NumClasses, d.NumFeatures)
	if err != nil {
		return fmt.Errorf("inserting descriptor: %v", err)
	}
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(`CREATE TABLE instances (`)
	createStmtBuf.WriteString(s.db.IDColumnDefinition())
	createStmtBuf.WriteString(`, class_label INTEGER NOT NULL`)
	for f := 0; f < d.NumFeatures; f++ {
		createStmtBuf.WriteString(fmt.Sprintf(`, "%s" DOUBLE PRECISION NOT NULL`, featureColumn(f)))
	}
	createStmtBuf.WriteString(`)`)
	_, err = tx.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("creating instances table: %v", err)
	}
	for chunkStart := 0; chunkStart < len(d.Instances); chunkStart += MaxInstanceInsertionsPerStatement {
		chunkEnd := chunkStart + MaxInstanceInsertionsPerStatement
		if chunkEnd > len(d.Instances) {
			chunkEnd = len(d.Instances)
		}
		err = s.insertInstances(ctx, tx, d.NumFeatures, d.Instances[chunkStart:chunkEnd])
		if err != nil {
			return fmt.Errorf("inserting instances %d to %d: %v", chunkStart+1, chunkEnd, err)
		}
	}
	return nil
}

func (s *Store) insertInstances(ctx context.Context, tx *sql.Tx, numFeatures int, instances dataset.Instances) error {
	var insertStmtBuffer bytes.Buffer
	insertStmtBuffer.WriteString(`INSERT INTO instances (class_label`)
	for f := 0; f < numFeatures; f++ {
		insertStmtBuffer.WriteString(fmt.Sprintf(`, "%s"`, featureColumn(f)))
	}
	insertStmtBuffer.WriteString(`) VALUES `)
	values := make([]interface{}, 0, len(instances)*(numFeatures+1))
	for n, i := range instances {
		if n > 0 {
			insertStmtBuffer.WriteString(`, `)
		}
		insertStmtBuffer.WriteString(`(`)
		values = append(values, i.Class())
		insertStmtBuffer.WriteString(s.db.Placeholder(len(values)))
		for _, v := range i.Values() {
			values = append(values, v)
			insertStmtBuffer.WriteString(`, `)
			insertStmtBuffer.WriteString(s.db.Placeholder(len(values)))
		}
		insertStmtBuffer.WriteString(`)`)
	}
	_, err := tx.ExecContext(ctx, insertStmtBuffer.String(), values...)
	return err
}

func featureColumn(f int) string {
	return fmt.Sprintf("f%d", f)
}
