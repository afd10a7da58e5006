package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flight_booking/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	flightsTable     = "flights"
	changeTypeUpdate = "UPDATE"

	defaultReconnectInterval = 5 * time.Second
)

// RawChange is one decoded notification payload; Old and New stay undecoded row snapshots.
type RawChange struct {
	Table string          `json:"table"`
	Type  string          `json:"type"`
	Old   json.RawMessage `json:"old"`
	New   json.RawMessage `json:"new"`
}

// notificationConn is the subset of *pgx.Conn used by the feed.
type notificationConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type connectFunc func(ctx context.Context, dsn string) (notificationConn, error)

func pgxConnect(ctx context.Context, dsn string) (notificationConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// PgChangeFeed listens on a Postgres NOTIFY channel fed by the flights update trigger.
// It holds one dedicated connection outside the pool.
type PgChangeFeed struct {
	dsn       string
	channel   string
	reconnect time.Duration
	log       *logger.Logger
	onState   func(subscribed bool)
	connect   connectFunc
}

var _ ChangeFeed = (*PgChangeFeed)(nil)

type FeedOption func(*PgChangeFeed)

// WithReconnectInterval sets the pause between a lost connection and the next attempt.
func WithReconnectInterval(d time.Duration) FeedOption {
	return func(f *PgChangeFeed) {
		if d > 0 {
			f.reconnect = d
		}
	}
}

func WithFeedLogger(l *logger.Logger) FeedOption {
	return func(f *PgChangeFeed) {
		if l != nil {
			f.log = l
		}
	}
}

func NewPgChangeFeed(dsn, channel string, opts ...FeedOption) *PgChangeFeed {
	f := &PgChangeFeed{
		dsn:       dsn,
		channel:   channel,
		reconnect: defaultReconnectInterval,
		log:       logger.Nop(),
		connect:   pgxConnect,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Listen blocks until ctx is cancelled. Connection loss is logged and retried
// after the reconnect interval. It returns nil on cancellation.
func (f *PgChangeFeed) Listen(ctx context.Context, out chan<- RawChange) error {
	for {
		err := f.listenOnce(ctx, out)
		f.setState(false)
		if ctx.Err() != nil {
			return nil
		}
		f.log.Warnw("change_feed_lost", "channel", f.channel, "err", err, "retry_in", f.reconnect)

		timer := time.NewTimer(f.reconnect)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (f *PgChangeFeed) listenOnce(ctx context.Context, out chan<- RawChange) error {
	conn, err := f.connect(ctx, f.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{f.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", f.channel, err)
	}
	f.setState(true)
	f.log.Infow("change_feed_subscribed", "channel", f.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		change, err := decodeNotification(n.Payload)
		if err != nil {
			f.log.Warnw("change_feed_payload_invalid", "channel", n.Channel, "err", err)
			continue
		}
		if !isFlightUpdate(change) {
			continue
		}

		select {
		case out <- change:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// OnState registers a callback invoked whenever the LISTEN subscription is
// established or lost. It must be called before Listen.
func (f *PgChangeFeed) OnState(fn func(subscribed bool)) {
	f.onState = fn
}

func (f *PgChangeFeed) setState(subscribed bool) {
	if f.onState != nil {
		f.onState(subscribed)
	}
}

var errEmptyPayload = errors.New("empty notification payload")

func decodeNotification(payload string) (RawChange, error) {
	if payload == "" {
		return RawChange{}, errEmptyPayload
	}
	var rc RawChange
	if err := json.Unmarshal([]byte(payload), &rc); err != nil {
		return RawChange{}, fmt.Errorf("decode notification: %w", err)
	}
	return rc, nil
}

func isFlightUpdate(rc RawChange) bool {
	return rc.Table == flightsTable && rc.Type == changeTypeUpdate
}
