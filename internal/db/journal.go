package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/roundmods/internal/modifier"
)

const (
	// DefaultJournalBuffer is the queue size used when NewJournal gets <= 0.
	DefaultJournalBuffer = 256

	flushTimeout = 5 * time.Second
)

// Journal persists modifier.JournalEvent rows.
// Record never blocks: events are queued and written by Run.
// A full queue drops the event and counts it.
type Journal struct {
	pool    *pgxpool.Pool
	events  chan modifier.JournalEvent
	dropped atomic.Int64
}

// NewJournal creates a journal writing to pool.
func NewJournal(pool *pgxpool.Pool, buffer int) *Journal {
	if buffer <= 0 {
		buffer = DefaultJournalBuffer
	}
	return &Journal{
		pool:   pool,
		events: make(chan modifier.JournalEvent, buffer),
	}
}

// Record queues e for writing.
func (j *Journal) Record(e modifier.JournalEvent) {
	select {
	case j.events <- e:
	default:
		n := j.dropped.Add(1)
		slog.Warn("journal queue full, dropping event",
			"action", e.Action,
			"round", e.Round,
			"dropped", n)
	}
}

// Dropped returns how many events were discarded on a full queue.
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// Run writes queued events until ctx is cancelled, then drains what is left
// with a short timeout.
func (j *Journal) Run(ctx context.Context) error {
	for {
		select {
		case e := <-j.events:
			if err := j.Insert(ctx, e); err != nil {
				slog.Error("writing journal event", "action", e.Action, "error", err)
			}
		case <-ctx.Done():
			j.drain()
			return nil
		}
	}
}

func (j *Journal) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case e := <-j.events:
			if err := j.Insert(ctx, e); err != nil {
				slog.Error("flushing journal event", "action", e.Action, "error", err)
				return
			}
		default:
			return
		}
	}
}

// Insert writes one event synchronously.
func (j *Journal) Insert(ctx context.Context, e modifier.JournalEvent) error {
	mods := e.Modifiers
	if mods == nil {
		mods = []string{}
	}
	_, err := j.pool.Exec(ctx,
		`INSERT INTO modifier_journal (round_id, round, action, reason, modifiers, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.RoundID.String(), e.Round, string(e.Action), string(e.Reason), mods, e.At,
	)
	if err != nil {
		return fmt.Errorf("inserting journal event %s: %w", e.Action, err)
	}
	return nil
}

// Recent returns up to n latest events, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]modifier.JournalEvent, error) {
	rows, err := j.pool.Query(ctx,
		`SELECT round_id::text, round, action, reason, modifiers, recorded_at
		 FROM modifier_journal
		 ORDER BY id DESC
		 LIMIT $1`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var out []modifier.JournalEvent
	for rows.Next() {
		var (
			roundID, action, reason string
			e                       modifier.JournalEvent
		)
		if err := rows.Scan(&roundID, &e.Round, &action, &reason, &e.Modifiers, &e.At); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		if e.RoundID, err = uuid.Parse(roundID); err != nil {
			return nil, fmt.Errorf("parsing round id %q: %w", roundID, err)
		}
		e.Action = modifier.JournalAction(action)
		e.Reason = modifier.JournalReason(reason)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}
	return out, nil
}
