// Package firebase implements the store gateway on the Firebase Realtime
// Database, the managed backend the browser clients talk to directly.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"smartlab-backend/internal/store"
)

const defaultPollInterval = 2 * time.Second

// Client is a store.Store backed by a Firebase Realtime Database instance.
//
// The Admin SDK exposes no change listeners, so Subscribe polls the path at
// a fixed interval and fires the callback whenever the serialized value
// differs from the last delivery.
type Client struct {
	db           *db.Client
	pollInterval time.Duration
}

// Config holds the connection settings for the Realtime Database.
type Config struct {
	CredentialsFile string
	DatabaseURL     string
	PollInterval    time.Duration
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: cfg.DatabaseURL},
		option.WithCredentialsFile(cfg.CredentialsFile),
	)
	if err != nil {
		return nil, &store.Error{Op: "connect", Path: cfg.DatabaseURL, Err: err}
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, &store.Error{Op: "connect", Path: cfg.DatabaseURL, Err: err}
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Client{db: client, pollInterval: interval}, nil
}

func (c *Client) Create(ctx context.Context, path string, value interface{}) error {
	if err := c.db.NewRef(path).Set(ctx, value); err != nil {
		return &store.Error{Op: "create", Path: path, Err: err}
	}
	return nil
}

func (c *Client) Read(ctx context.Context, path string, dest interface{}) error {
	var raw json.RawMessage
	if err := c.db.NewRef(path).Get(ctx, &raw); err != nil {
		return &store.Error{Op: "read", Path: path, Err: err}
	}
	if isNull(raw) {
		return &store.Error{Op: "read", Path: path, Err: store.ErrPathNotFound}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &store.Error{Op: "read", Path: path, Err: err}
	}
	return nil
}

func (c *Client) Update(ctx context.Context, path string, partial map[string]interface{}) error {
	if err := c.db.NewRef(path).Update(ctx, partial); err != nil {
		return &store.Error{Op: "update", Path: path, Err: err}
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.db.NewRef(path).Delete(ctx); err != nil {
		return &store.Error{Op: "delete", Path: path, Err: err}
	}
	return nil
}

func (c *Client) Transact(ctx context.Context, path string, fn store.UpdateFn) error {
	err := c.db.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		return fn(node)
	})
	if err != nil {
		return &store.Error{Op: "transact", Path: path, Err: err}
	}
	return nil
}

func (c *Client) Subscribe(path string, onData func(json.RawMessage), onError func(error)) (func(), error) {
	stop := make(chan struct{})
	go func() {
		var last json.RawMessage
		first := true
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			var raw json.RawMessage
			err := c.db.NewRef(path).Get(context.Background(), &raw)
			if err != nil {
				if onError != nil {
					onError(&store.Error{Op: "subscribe", Path: path, Err: err})
				}
			} else if first || !bytes.Equal(raw, last) {
				first = false
				last = raw
				onData(raw)
			}
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()
	var once bool
	return func() {
		if !once {
			once = true
			close(stop)
		}
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
