package poller

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sinetsur-notifier/internal/components/assert"
	"sinetsur-notifier/internal/components/chrono"
	"sinetsur-notifier/internal/components/telemetry"
	"sinetsur-notifier/internal/scrapers/sinetsur"
	"sinetsur-notifier/internal/seenset"
	"sinetsur-notifier/lib/restyutil"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("poller")
var meter = otel.Meter("poller")

var cycleCounter, _ = meter.Int64Counter(
	"poller.cycles",
	metric.WithDescription("Polling cycles by outcome."),
)
var newRecordCounter, _ = meter.Int64Counter(
	"poller.new_records",
	metric.WithDescription("Records reported for the first time."),
)

const (
	report_cycle_panic      = "cycle.panic"
	report_cycle_transport  = "cycle.transport"
	report_cycle_diagnostic = "cycle.diagnostic"
	report_cycle_report     = "cycle.report"
)

// DefaultInterval is the pause between the end of one cycle and the start of
// the next.
const DefaultInterval = time.Minute

// dump file names are rendered in chrono's location
const dump_time_layout = "20060102_150405"

type ResultKind int

const (
	RESULT_SUCCESS ResultKind = iota
	RESULT_DIAGNOSTIC
	RESULT_TRANSPORT_FAILURE
)

func (k ResultKind) String() string {
	switch k {
	case RESULT_SUCCESS:
		return "success"
	case RESULT_DIAGNOSTIC:
		return "diagnostic"
	case RESULT_TRANSPORT_FAILURE:
		return "transport_failure"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// CycleResult is everything one cycle observed.
type CycleResult struct {
	Kind ResultKind
	// Cycle counts from 1.
	Cycle int
	At    time.Time
	// User and Unit are what the board showed, they are empty when the cycle
	// failed before reaching it.
	User string
	Unit string
	// Records are only the records not reported by an earlier cycle.
	Records []sinetsur.Record
	// set when Kind is RESULT_DIAGNOSTIC
	Diagnostic *sinetsur.Diagnostic
	// set when Kind is RESULT_TRANSPORT_FAILURE
	Err error
}

// Authenticator creates a fresh logged in session, sinetsur.Client is the
// production implementation.
type Authenticator interface {
	Login(ctx context.Context) (*sinetsur.Session, sinetsur.Page, error)
}

// Reporter receives the result of every cycle.
type Reporter interface {
	Report(ctx context.Context, result CycleResult) error
}

type Options struct {
	// if unspecified, DefaultInterval is used
	Interval time.Duration
	// if set, the page of every successful login is written to it
	PageDump restyutil.InstrumentOutput
}

// Poller logs in, reads the board and reports new records once per interval
// until its context is canceled. It is not safe for concurrent use.
type Poller struct {
	auth      Authenticator
	reporter  Reporter
	seen      *seenset.Set
	locator   sinetsur.GridLocator
	extractor sinetsur.RecordExtractor
	time      chrono.API
	tel       telemetry.API
	opts      Options

	cycles int
}

func NewPoller(
	auth Authenticator,
	reporter Reporter,
	seen *seenset.Set,
	clock chrono.API,
	tel telemetry.API,
	opts Options,
) *Poller {
	assert.NotNil(auth)
	assert.NotNil(reporter)
	assert.NotNil(seen)
	assert.NotNil(clock)
	assert.NotNil(tel)

	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	return &Poller{
		auth:      auth,
		reporter:  reporter,
		seen:      seen,
		locator:   sinetsur.NewGridLocator(),
		extractor: sinetsur.NewRecordExtractor(),
		time:      clock,
		tel:       telemetry.NewScopedAPI("poller", tel),
		opts:      opts,
	}
}

// Run performs the first cycle immediately and then one more every
// interval. It only returns once ctx is canceled, a cycle that is
// interrupted by the cancellation is not reported.
func (p *Poller) Run(ctx context.Context) {
	for {
		result := p.Cycle(ctx)
		if ctx.Err() != nil {
			return
		}
		p.report(ctx, result)

		select {
		case <-ctx.Done():
			return
		case <-p.time.After(p.opts.Interval):
		}
	}
}

// RunOnce performs and reports a single cycle.
func (p *Poller) RunOnce(ctx context.Context) CycleResult {
	result := p.Cycle(ctx)
	p.report(ctx, result)
	return result
}

func (p *Poller) report(ctx context.Context, result CycleResult) {
	err := p.reporter.Report(ctx, result)
	if err != nil {
		p.tel.ReportWarning(report_cycle_report, fmt.Errorf("report cycle %d: %w", result.Cycle, err))
	}
}

// Cycle runs one login, locate, extract pass. It never panics and never
// returns an error, failures are described by the result's Kind.
func (p *Poller) Cycle(ctx context.Context) (result CycleResult) {
	ctx, span := tracer.Start(ctx, "poller:Cycle")
	defer span.End()

	p.cycles++
	result = CycleResult{
		Cycle: p.cycles,
		At:    p.time.Now(),
	}
	span.SetAttributes(attribute.Int("cycle", result.Cycle))

	defer func() {
		panicked := recover()
		if panicked != nil {
			err := fmt.Errorf("cycle %d panicked: %v", result.Cycle, panicked)
			p.tel.ReportBroken(report_cycle_panic, err, string(debug.Stack()))
			result = CycleResult{
				Kind:  RESULT_TRANSPORT_FAILURE,
				Cycle: result.Cycle,
				At:    result.At,
				Err:   err,
			}
		}

		span.SetAttributes(attribute.String("kind", result.Kind.String()))
		if result.Kind == RESULT_TRANSPORT_FAILURE {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, "cycle failed")
		}
		cycleCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", result.Kind.String())))
		newRecordCounter.Add(ctx, int64(len(result.Records)))
		p.tel.ReportCount("cycle.seen", int64(p.seen.Len()))
	}()

	session, page, err := p.auth.Login(ctx)
	if err != nil {
		p.tel.ReportWarning(report_cycle_transport, err)
		result.Kind = RESULT_TRANSPORT_FAILURE
		result.Err = err
		return result
	}
	defer session.Close()

	p.dumpPage(result.At, page)

	result.User = sinetsur.LoggedInUser(page.Doc)
	result.Unit, _ = p.locator.ActiveUnit(page.Doc)
	p.tel.ReportDebug("board loaded", result.User, result.Unit)

	rows, err := p.locator.Locate(page.Doc)
	var diag sinetsur.Diagnostic
	if errors.As(err, &diag) {
		p.tel.ReportWarning(report_cycle_diagnostic, diag)
		result.Kind = RESULT_DIAGNOSTIC
		result.Diagnostic = &diag
		return result
	}
	if err != nil {
		p.tel.ReportBroken(report_cycle_diagnostic, err)
		result.Kind = RESULT_TRANSPORT_FAILURE
		result.Err = err
		return result
	}

	result.Kind = RESULT_SUCCESS
	result.Records = p.extractor.Extract(rows, p.seen)
	span.SetAttributes(
		attribute.Int("rows", len(rows)),
		attribute.Int("new_records", len(result.Records)),
	)
	return result
}

// DumpName is the file name the board fetched at t is dumped under.
func DumpName(t time.Time) string {
	return fmt.Sprintf("log%s.html", t.Format(dump_time_layout))
}

func (p *Poller) dumpPage(at time.Time, page sinetsur.Page) {
	if p.opts.PageDump == nil || len(page.Raw) == 0 {
		return
	}
	p.opts.PageDump.Write(DumpName(at.In(p.time.Location())), string(page.Raw))
}
