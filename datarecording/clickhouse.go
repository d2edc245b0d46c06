package datarecording

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/tebeka/atexit"
)

// ClickHouseOptions configures the connection of a ClickHouse-backed
// Recorder.
type ClickHouseOptions struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// BatchSize is the number of buffered entries that triggers a flush.
	// Zero picks a default.
	BatchSize int
}

// NewClickHouse creates a Recorder that writes telemetry into a ClickHouse
// database. Use it instead of New when several simulator runs feed one shared
// analysis database. Buffered entries are flushed at process exit.
func NewClickHouse(opts ClickHouseOptions) Recorder {
	if opts.BatchSize == 0 {
		opts.BatchSize = 100000
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", opts.Host, opts.Port)},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:  30 * time.Second,
		MaxOpenConns: 5,
		MaxIdleConns: 5,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	w := &clickHouseWriter{
		conn:      conn,
		batchSize: opts.BatchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type clickHouseWriter struct {
	conn      clickhouse.Conn
	batchSize int

	mu     sync.Mutex
	tables map[string]*table
}

func clickHouseColumnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "Bool"
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return "Int64"
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "UInt64"
	case reflect.Float32, reflect.Float64:
		return "Float64"
	case reflect.String:
		return "String"
	default:
		panic(fmt.Errorf("field kind %s cannot be recorded", kind))
	}
}

// CreateTable creates a new table shaped after the sample entry. Every field
// of the sample struct must be a bool, integer, float, or string.
func (w *clickHouseWriter) CreateTable(tableName string, sampleEntry any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	structType := reflect.TypeOf(sampleEntry)

	cols := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		cols = append(cols,
			field.Name+" "+clickHouseColumnType(field.Type.Kind()))
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s) ENGINE = MergeTree() ORDER BY %s",
		tableName,
		strings.Join(cols, ", "),
		structType.Field(0).Name)

	err := w.conn.Exec(context.Background(), stmt)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	w.tables[tableName] = &table{structType: structType}
}

// InsertData buffers one entry. The entry type must match the sample the
// table was created with.
func (w *clickHouseWriter) InsertData(tableName string, entry any) {
	w.mu.Lock()
	defer w.mu.Unlock()

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
func (w *clickHouseWriter) ListTables() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush writes all buffered entries into the database.
func (w *clickHouseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for name, t := range w.tables {
		w.flushTable(name, t)
	}
}

func (w *clickHouseWriter) flushTable(tableName string, t *table) {
	if len(t.entries) == 0 {
		return
	}

	ctx := context.Background()

	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
	}

	numFields := t.structType.NumField()
	for _, entry := range t.entries {
		v := reflect.ValueOf(entry)

		args := make([]any, 0, numFields)
		for j := 0; j < numFields; j++ {
			args = append(args, v.Field(j).Interface())
		}

		if err := batch.Append(args...); err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	if err := batch.Send(); err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	t.entries = nil
}
