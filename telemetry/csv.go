package telemetry

import (
	"context"
	"encoding/csv"
	"io"
	"sync"
	"time"

	"github.com/gavinwade12/carif/car"
	"github.com/pkg/errors"
)

// CSVDecoderBuffer is how many parsed rows may wait for the next Refresh.
const CSVDecoderBuffer = 100

// ErrMissingSignal is returned for a header that lacks a required column.
var ErrMissingSignal = errors.New("missing signal")

// requiredSignals must have a column in every header. Their zero values
// would read as a bus fault, an open door and an unlatched seatbelt.
var requiredSignals = []string{"can_valid", "doors_closed", "seatbelt_latched"}

// CSVDecoder is a car.Decoder reading CSV telemetry: a header row naming
// signals (see SignalNames) followed by one row per sample. Columns may come
// in any order. The can_valid, doors_closed and seatbelt_latched columns are
// required; other signals without a column keep their zero value.
//
// Rows are read on a background goroutine so Refresh never waits on the
// source unless asked to, or unless the decoder is Paced.
type CSVDecoder struct {
	// StaleAfter marks the bus data invalid when no row arrived for this
	// long. Zero disables the check.
	StaleAfter time.Duration

	// Paced makes every Refresh consume exactly one row, waiting for it if
	// the reader hasn't produced it yet. Use it for recorded telemetry, where
	// each row is one cycle; a live stream wants the newest row instead.
	Paced bool

	rows   chan car.DecodedState
	done   chan struct{}
	logger car.Logger

	state    car.DecodedState
	lastRow  int64
	haveRows bool
	stale    bool

	mu  sync.Mutex
	err error
}

// NewCSVDecoder starts reading CSV telemetry from r. The reader is consumed
// until EOF, the first read error or ctx being canceled. A canceled reader
// still blocked in r.Read returns once the caller closes r.
func NewCSVDecoder(ctx context.Context, r io.Reader, l car.Logger) *CSVDecoder {
	if l == nil {
		l = car.NopLogger
	}
	d := &CSVDecoder{
		rows:   make(chan car.DecodedState, CSVDecoderBuffer),
		done:   make(chan struct{}),
		logger: l,
	}
	go d.read(ctx, csv.NewReader(r))
	return d
}

// Done is closed once the reader goroutine has stopped.
func (d *CSVDecoder) Done() <-chan struct{} {
	return d.done
}

func (d *CSVDecoder) read(ctx context.Context, r *csv.Reader) {
	defer close(d.done)
	defer close(d.rows)

	// short or long rows are skipped by parseRow instead of failing the reader
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		d.setErr(errors.Wrap(err, "reading header"))
		return
	}
	columns := make([]signal, len(header))
	for i, name := range header {
		s, err := lookupSignal(name)
		if err != nil {
			d.setErr(errors.Wrap(err, "parsing header"))
			return
		}
		columns[i] = s
	}
	if err := checkRequired(header); err != nil {
		d.setErr(errors.Wrap(err, "parsing header"))
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		record, err := r.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				d.logger.Debugf("skipping malformed row: %v", err)
				continue
			}
			d.setErr(errors.Wrap(err, "reading row"))
			return
		}

		var s car.DecodedState
		if err := parseRow(&s, columns, record); err != nil {
			d.logger.Debugf("skipping row: %v", err)
			continue
		}
		select {
		case d.rows <- s:
		case <-ctx.Done():
			return
		}
	}
}

func checkRequired(header []string) error {
	for _, name := range requiredSignals {
		found := false
		for _, h := range header {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(ErrMissingSignal, "%q", name)
		}
	}
	return nil
}

func parseRow(s *car.DecodedState, columns []signal, record []string) error {
	if len(record) != len(columns) {
		return errors.Errorf("row has %d fields, header has %d", len(record), len(columns))
	}
	for i, v := range record {
		if err := columns[i].set(s, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *CSVDecoder) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
	d.logger.Debug(err.Error())
}

// Err returns the error that stopped reading, if any. A source that ended
// cleanly returns nil.
func (d *CSVDecoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Refresh applies every row received since the last call; the newest one
// wins. When blocking is true it first waits for at least one row, unless
// the source has ended. A Paced decoder applies only the next row and always
// waits for it.
func (d *CSVDecoder) Refresh(nanos int64, blocking bool) {
	received := false
	if blocking || d.Paced {
		if s, ok := <-d.rows; ok {
			d.state, received = s, true
		}
	}

drain:
	for !d.Paced {
		select {
		case s, ok := <-d.rows:
			if !ok {
				break drain
			}
			d.state, received = s, true
		default:
			break drain
		}
	}

	if received {
		d.lastRow = nanos
		d.haveRows = true
	}
	d.stale = d.StaleAfter > 0 && d.haveRows && time.Duration(nanos-d.lastRow) > d.StaleAfter
}

// State returns the newest decoded row. Before any row arrived, or once the
// newest row is older than StaleAfter, CANValid is false.
func (d *CSVDecoder) State() car.DecodedState {
	s := d.state
	if !d.haveRows || d.stale {
		s.CANValid = false
	}
	return s
}
