// Package datarecording persists simulation telemetry into SQLite databases.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// A Recorder is a backend that can record and store telemetry samples.
type Recorder interface {
	// CreateTable creates a new table shaped after the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry of the table's type for writing.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries into the database.
	Flush()
}

// New creates a Recorder backed by a SQLite database at path (the .sqlite3
// suffix is appended). An empty path picks a generated name. Buffered entries
// are flushed at process exit.
func New(path string) Recorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: 10000,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a Recorder on an already-open database connection.
func NewWithDB(db *sql.DB) Recorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: 10000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

type sqliteWriter struct {
	*sql.DB

	dbName    string
	batchSize int
	tables    map[string]*table
}

func (w *sqliteWriter) init() {
	if w.dbName == "" {
		w.dbName = "fswsim_tlm_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Telemetry database created: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db
}

func columnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	default:
		panic(fmt.Errorf("field kind %s cannot be recorded", kind))
	}
}

// CreateTable creates a new table shaped after the sample entry. Every field
// of the sample struct must be a bool, integer, float, or string.
func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	structType := reflect.TypeOf(sampleEntry)

	cols := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		cols = append(cols,
			field.Name+" "+columnType(field.Type.Kind()))
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s);",
		tableName, strings.Join(cols, ", "))

	_, err := w.Exec(stmt)
	if err != nil {
		panic(err)
	}

	w.tables[tableName] = &table{structType: structType}
}

// InsertData buffers one entry. The entry type must match the sample the
// table was created with.
func (w *sqliteWriter) InsertData(tableName string, entry any) {
	t, ok := w.tables[tableName]
	if !ok {
		panic(fmt.Errorf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Errorf("entry type %s does not match table %s",
			reflect.TypeOf(entry), tableName))
	}

	t.entries = append(t.entries, entry)

	if len(t.entries) >= w.batchSize {
		w.flushTable(tableName, t)
	}
}

// ListTables returns the names of all created tables.
func (w *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush writes all buffered entries into the database.
func (w *sqliteWriter) Flush() {
	for name, t := range w.tables {
		w.flushTable(name, t)
	}
}

func (w *sqliteWriter) flushTable(tableName string, t *table) {
	if len(t.entries) == 0 {
		return
	}

	numFields := t.structType.NumField()

	colNames := make([]string, 0, numFields)
	for i := 0; i < numFields; i++ {
		colNames = append(colNames, t.structType.Field(i).Name)
	}

	placeholder := "(" + strings.TrimSuffix(
		strings.Repeat("?, ", numFields), ", ") + ")"

	rows := make([]string, len(t.entries))
	args := make([]any, 0, len(t.entries)*numFields)
	for i, entry := range t.entries {
		rows[i] = placeholder

		v := reflect.ValueOf(entry)
		for j := 0; j < numFields; j++ {
			args = append(args, v.Field(j).Interface())
		}
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s;",
		tableName,
		strings.Join(colNames, ", "),
		strings.Join(rows, ", "))

	_, err := w.Exec(stmt, args...)
	if err != nil {
		panic(err)
	}

	t.entries = nil
}
