package metadata

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
)

// fakeDriver is a minimal database/sql/driver implementation backing
// the metadata_test.go cases. It has no network or file dependency,
// so it only ever drives this package's tests, never production code.
type fakeDriver struct {
	mu      sync.Mutex
	queries map[string]fakeResult
}

type fakeResult struct {
	columns []string
	rows    [][]driver.Value
	err     error
}

var registerOnce sync.Once
var registeredDriver *fakeDriver

func newFakeDB() (*sql.DB, *fakeDriver) {
	registerOnce.Do(func() {
		registeredDriver = &fakeDriver{queries: map[string]fakeResult{}}
		sql.Register("metadata_fake", registeredDriver)
	})
	registeredDriver.mu.Lock()
	registeredDriver.queries = map[string]fakeResult{}
	registeredDriver.mu.Unlock()

	db, err := sql.Open("metadata_fake", "")
	if err != nil {
		panic(err)
	}
	return db, registeredDriver
}

func (d *fakeDriver) set(query string, result fakeResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries[query] = result
}

func (d *fakeDriver) Open(name string) (driver.Conn, error) {
	return &fakeConn{d: d}, nil
}

type fakeConn struct{ d *fakeDriver }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: query}, nil
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, fmt.Errorf("not supported") }

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }
func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, fmt.Errorf("not supported")
}
func (s *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.conn.d.mu.Lock()
	result, ok := s.conn.d.queries[s.query]
	s.conn.d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fake driver: no result registered for query %q", s.query)
	}
	if result.err != nil {
		return nil, result.err
	}
	return &fakeRows{columns: result.columns, rows: result.rows}, nil
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }
func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}
