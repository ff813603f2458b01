package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

const storageScopeName = "github.com/Silvia-Panaite/Finalproject-Catalog/storage"

var _ storage.Store = (*InstrumentedStore)(nil)

// InstrumentedStore wraps storage.Store with OTel tracing and metrics.
// Every method gets a span and is counted in catalog.storage.* metrics.
// Use WrapStore to create one; it returns the original store unchanged when
// telemetry is disabled.
type InstrumentedStore struct {
	inner  storage.Store
	tracer trace.Tracer
	ops    metric.Int64Counter
	dur    metric.Float64Histogram
	errs   metric.Int64Counter
	rows   metric.Int64Counter
}

// WrapStore returns s decorated with OTel instrumentation.
func WrapStore(s storage.Store) storage.Store {
	if !Enabled() {
		return s
	}
	return newInstrumentedStore(s)
}

func newInstrumentedStore(s storage.Store) *InstrumentedStore {
	m := Meter(storageScopeName)
	ops, _ := m.Int64Counter("catalog.storage.operations",
		metric.WithDescription("Total storage operations executed"),
	)
	dur, _ := m.Float64Histogram("catalog.storage.operation.duration",
		metric.WithDescription("Storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("catalog.storage.errors",
		metric.WithDescription("Total storage operation errors"),
	)
	rows, _ := m.Int64Counter("catalog.storage.rows_affected",
		metric.WithDescription("Rows inserted, updated or deleted"),
	)
	return &InstrumentedStore{
		inner:  s,
		tracer: Tracer(storageScopeName),
		ops:    ops,
		dur:    dur,
		errs:   errs,
		rows:   rows,
	}
}

// op starts a span and records a metric for the named storage operation.
func (s *InstrumentedStore) op(ctx context.Context, name string, table types.Table) (context.Context, trace.Span, time.Time, []attribute.KeyValue) {
	attrs := []attribute.KeyValue{
		attribute.String("db.operation", name),
		attribute.String("db.sql.table", string(table)),
	}
	ctx, span := s.tracer.Start(ctx, "storage."+name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	s.ops.Add(ctx, 1, metric.WithAttributes(attrs...))
	return ctx, span, time.Now(), attrs
}

// done ends the span, records duration and optional error.
func (s *InstrumentedStore) done(ctx context.Context, span trace.Span, start time.Time, err error, attrs []attribute.KeyValue) {
	ms := float64(time.Since(start).Milliseconds())
	s.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.End()
}

func (s *InstrumentedStore) CreateTable(ctx context.Context, table types.Table, columns []storage.ColumnDef) error {
	ctx, span, t, attrs := s.op(ctx, "CreateTable", table)
	span.SetAttributes(attribute.Int("db.columns", len(columns)))
	err := s.inner.CreateTable(ctx, table, columns)
	s.done(ctx, span, t, err, attrs)
	return err
}

func (s *InstrumentedStore) DropTable(ctx context.Context, table types.Table) error {
	ctx, span, t, attrs := s.op(ctx, "DropTable", table)
	err := s.inner.DropTable(ctx, table)
	s.done(ctx, span, t, err, attrs)
	return err
}

func (s *InstrumentedStore) Add(ctx context.Context, table types.Table, data storage.Fields) (int64, error) {
	ctx, span, t, attrs := s.op(ctx, "Add", table)
	id, err := s.inner.Add(ctx, table, data)
	if err == nil {
		span.SetAttributes(attribute.Int64("catalog.record.id", id))
		s.rows.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	s.done(ctx, span, t, err, attrs)
	return id, err
}

func (s *InstrumentedStore) Select(ctx context.Context, table types.Table, q storage.Query) (storage.Cursor, error) {
	ctx, span, t, attrs := s.op(ctx, "Select", table)
	span.SetAttributes(
		attribute.Int("db.criteria", len(q.Criteria)),
		attribute.String("db.order_by", string(q.OrderBy)),
	)
	cur, err := s.inner.Select(ctx, table, q)
	s.done(ctx, span, t, err, attrs)
	return cur, err
}

func (s *InstrumentedStore) Update(ctx context.Context, table types.Table, criteria, data storage.Fields) (int64, error) {
	ctx, span, t, attrs := s.op(ctx, "Update", table)
	n, err := s.inner.Update(ctx, table, criteria, data)
	if err == nil {
		s.rows.Add(ctx, n, metric.WithAttributes(attrs...))
	}
	s.done(ctx, span, t, err, attrs)
	return n, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, table types.Table, criteria storage.Fields) (int64, error) {
	ctx, span, t, attrs := s.op(ctx, "Delete", table)
	n, err := s.inner.Delete(ctx, table, criteria)
	if err == nil {
		s.rows.Add(ctx, n, metric.WithAttributes(attrs...))
	}
	s.done(ctx, span, t, err, attrs)
	return n, err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
