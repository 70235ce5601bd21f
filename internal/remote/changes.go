package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// notifyPayload is the JSON body the backend's triggers send with each
// NOTIFY on a "changes_<table>" channel.
type notifyPayload struct {
	Action string         `json:"action"`
	Record map[string]any `json:"record"`
}

// SubscribeToChanges listens for row changes on table over a dedicated
// connection. filter is "column=value" (string compare against the notified
// record) or empty for all rows. The subscription ends when the returned
// function is called or ctx is done. Delivery is at-most-once, best-effort;
// consumers re-fetch on each event rather than applying deltas.
func (c *Client) SubscribeToChanges(ctx context.Context, table, filter string, fn func(Change)) (func(), error) {
	conn, err := pgx.Connect(ctx, c.cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connecting change listener: %w", err)
	}

	channel := "changes_" + table
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listening on %s: %w", channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer func() {
			_ = conn.Close(context.Background())
		}()
		for {
			n, err := conn.WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					c.log.Warn(subCtx, "change feed interrupted", "table", table, "error", err)
				}
				return
			}

			var payload notifyPayload
			if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
				c.log.Warn(subCtx, "bad change payload", "table", table, "error", err)
				continue
			}
			if !matchesFilter(payload.Record, filter) {
				continue
			}
			fn(Change{Table: table, Action: payload.Action, Record: payload.Record})
		}
	}()

	return cancel, nil
}

// matchesFilter applies a single "column=value" predicate to a record.
func matchesFilter(record map[string]any, filter string) bool {
	if filter == "" {
		return true
	}
	col, want, ok := strings.Cut(filter, "=")
	if !ok {
		return false
	}
	got, present := record[col]
	if !present {
		return false
	}
	return fmt.Sprintf("%v", got) == want
}
