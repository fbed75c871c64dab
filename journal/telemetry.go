package journal

import (
	"context"

	"github.com/dogmatiq/searchkit/internal/telemetry"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WithTelemetry returns a [BinaryStore] that adds telemetry to s.
//
// Searches performed by [Search], [SearchBy] and their variants on journals
// opened from the returned store are also instrumented.
func WithTelemetry(
	s BinaryStore,
	p trace.TracerProvider,
	m metric.MeterProvider,
	l log.LoggerProvider,
) BinaryStore {
	return &instrumentedStore{
		Next: s,
		Telemetry: &telemetry.Provider{
			TracerProvider: p,
			MeterProvider:  m,
			LoggerProvider: l,
		},
	}
}

// instrumentedStore is a decorator that adds instrumentation to a [BinaryStore].
type instrumentedStore struct {
	Next      BinaryStore
	Telemetry *telemetry.Provider
}

func (s *instrumentedStore) Open(ctx context.Context, name string) (BinaryJournal, error) {
	r := s.Telemetry.Recorder(
		"github.com/dogmatiq/searchkit/journal",
		telemetry.Type("store", s.Next),
		telemetry.String("handle", telemetry.HandleID()),
		telemetry.String("name", name),
	)

	ctx, span := r.StartSpan(ctx, "journal.open")
	defer span.End()

	next, err := s.Next.Open(ctx, name)
	if err != nil {
		span.Error("could not open journal", err)
		return nil, err
	}

	j := &instrumentedJournal{
		Next:      next,
		Telemetry: r,
		OpenCount: r.Int64UpDownCounter(
			"open_journals",
			"{journal}",
			"The number of journals that are currently open.",
		),
		ConflictCount: r.Int64Counter(
			"conflicts",
			"{conflict}",
			"The number of times appending a record to the journal has failed due to a optimistic-concurrency conflict.",
		),
		DataIO: r.Int64Counter(
			"io",
			"By",
			"The cumulative size of the journal records that have been read and written.",
		),
		RecordIO: r.Int64Counter(
			"record.io",
			"{record}",
			"The number of journal records that have been read and written.",
		),
		RecordSize: r.Int64Histogram(
			"record.size",
			"By",
			"The sizes of the journal records that have been read and written.",
		),
		SearchProbes: r.Int64Histogram(
			"search.probes",
			"{record}",
			"The number of journal records read by each binary search.",
		),
	}

	j.OpenCount.Add(ctx, 1)
	span.Debug("opened journal")

	return j, nil
}

type instrumentedJournal struct {
	Next      BinaryJournal
	Telemetry *telemetry.Recorder

	OpenCount     metric.Int64UpDownCounter
	ConflictCount metric.Int64Counter
	DataIO        metric.Int64Counter
	RecordIO      metric.Int64Counter
	RecordSize    metric.Int64Histogram
	SearchProbes  metric.Int64Histogram
}

func (j *instrumentedJournal) Name() string {
	return j.Next.Name()
}

func (j *instrumentedJournal) Bounds(ctx context.Context) (Interval, error) {
	ctx, span := j.Telemetry.StartSpan(ctx, "journal.bounds")
	defer span.End()

	bounds, err := j.Next.Bounds(ctx)
	if err != nil {
		span.Error("could not fetch journal bounds", err)
		return Interval{}, err
	}

	span.SetAttributes(
		telemetry.Int("begin", bounds.Begin),
		telemetry.Int("end", bounds.End),
	)

	span.Debug("fetched journal bounds")

	return bounds, nil
}

func (j *instrumentedJournal) Get(ctx context.Context, pos Position) ([]byte, error) {
	ctx, span := j.Telemetry.StartSpan(
		ctx,
		"journal.get",
		telemetry.Int("position", pos),
	)
	defer span.End()

	rec, err := j.Next.Get(ctx, pos)
	if err != nil {
		span.Error("could not fetch journal record", err)
		return nil, err
	}

	size := int64(len(rec))

	span.SetAttributes(
		telemetry.Int("record_size", size),
	)

	j.DataIO.Add(ctx, size, telemetry.ReadDirection)
	j.RecordIO.Add(ctx, 1, telemetry.ReadDirection)
	j.RecordSize.Record(ctx, size, telemetry.ReadDirection)

	span.Debug("fetched single journal record")

	return rec, nil
}

func (j *instrumentedJournal) Range(
	ctx context.Context,
	begin Position,
	fn BinaryRangeFunc,
) error {
	ctx, span := j.Telemetry.StartSpan(
		ctx,
		"journal.range",
		telemetry.Int("range_start", begin),
	)
	defer span.End()

	var (
		count     int
		totalSize int64
		brokeLoop bool
	)

	span.Debug("reading journal records")

	err := j.Next.Range(
		ctx,
		begin,
		func(ctx context.Context, pos Position, rec []byte) (bool, error) {
			count++

			size := int64(len(rec))
			totalSize += size

			j.DataIO.Add(ctx, size, telemetry.ReadDirection)
			j.RecordIO.Add(ctx, 1, telemetry.ReadDirection)
			j.RecordSize.Record(ctx, size, telemetry.ReadDirection)

			ok, err := fn(ctx, pos, rec)
			if ok || err != nil {
				return ok, err
			}

			brokeLoop = true
			return false, nil
		},
	)

	span.SetAttributes(
		telemetry.Int("records_read", count),
		telemetry.Int("bytes_read", totalSize),
		telemetry.Bool("reached_end", !brokeLoop && err == nil),
	)

	if err != nil {
		span.Error("could not read journal records", err)
		return err
	}

	span.Debug("completed reading journal records")

	return nil
}

func (j *instrumentedJournal) Append(ctx context.Context, end Position, rec []byte) error {
	size := int64(len(rec))

	ctx, span := j.Telemetry.StartSpan(
		ctx,
		"journal.append",
		telemetry.Int("position", end),
		telemetry.Int("record_size", size),
	)
	defer span.End()

	j.DataIO.Add(ctx, size, telemetry.WriteDirection)
	j.RecordIO.Add(ctx, 1, telemetry.WriteDirection)
	j.RecordSize.Record(ctx, size, telemetry.WriteDirection)

	if err := j.Next.Append(ctx, end, rec); err != nil {
		if IsConflict(err) {
			span.SetAttributes(
				telemetry.Bool("conflict", true),
			)
			j.ConflictCount.Add(ctx, 1)
		}

		span.Error("unable to append journal record", err)
		return err
	}

	span.Debug("journal record appended")

	return nil
}

func (j *instrumentedJournal) Truncate(ctx context.Context, end Position) error {
	ctx, span := j.Telemetry.StartSpan(
		ctx,
		"journal.truncate",
		telemetry.Int("retained_position", end),
	)
	defer span.End()

	if err := j.Next.Truncate(ctx, end); err != nil {
		span.Error("unable to truncate journal", err)
		return err
	}

	span.Debug("truncated oldest journal records")

	return nil
}

func (j *instrumentedJournal) Close() error {
	ctx, span := j.Telemetry.StartSpan(context.Background(), "journal.close")
	defer span.End()

	if j.Next == nil {
		span.Warn("journal is already closed")
		return nil
	}

	defer func() {
		j.Next = nil
		j.OpenCount.Add(ctx, -1)
	}()

	if err := j.Next.Close(); err != nil {
		span.Error("could not close journal", err)
		return err
	}

	span.Debug("closed journal")

	return nil
}

// searchObserver is implemented by journals that record telemetry about the
// binary searches performed on them.
type searchObserver interface {
	startSearch(ctx context.Context, in Interval) (context.Context, searchDoneFunc)
}

// searchDoneFunc is called when a search started by
// [searchObserver.startSearch] completes.
type searchDoneFunc func(pos Position, found bool, probes int, err error)

func (j *instrumentedJournal) startSearch(ctx context.Context, in Interval) (context.Context, searchDoneFunc) {
	ctx, span := j.Telemetry.StartSpan(
		ctx,
		"journal.search",
		telemetry.Stringer("search_interval", in),
		telemetry.Int("search_begin", in.Begin),
		telemetry.Int("search_end", in.End),
	)

	return ctx, func(pos Position, found bool, probes int, err error) {
		defer span.End()

		j.SearchProbes.Record(ctx, int64(probes))

		span.SetAttributes(
			telemetry.Int("probes", probes),
			telemetry.Bool("found", found),
		)

		if err != nil {
			span.Error("could not search journal", err)
			return
		}

		if found {
			span.Debug("found journal record", telemetry.Int("position", pos))
		} else {
			span.Debug("journal record not found", telemetry.Int("insertion_point", pos))
		}
	}
}

func observeSearch[T any](
	ctx context.Context,
	o searchObserver,
	in Interval,
) (context.Context, func(SearchResult[T], error)) {
	ctx, done := o.startSearch(ctx, in)

	return ctx, func(res SearchResult[T], err error) {
		done(res.Position, res.Found, res.Probes, err)
	}
}
