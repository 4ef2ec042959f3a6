package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"docqa-backend/internal/shared/telemetry"
)

// Settings describes how to reach the Mongo deployment.
type Settings struct {
	URI         string
	User        string
	Password    string
	Host        string
	PingTimeout time.Duration
}

// BuildURI returns the explicit URI when set, otherwise assembles an SRV URI
// from user, password and host. Credentials are query-escaped.
func BuildURI(s Settings) (string, error) {
	if uri := strings.TrimSpace(s.URI); uri != "" {
		return uri, nil
	}
	host := strings.TrimSpace(s.Host)
	if host == "" {
		return "", fmt.Errorf("mongo: MONGODB_URI or MONGODB_HOST is required")
	}
	if s.User == "" {
		return fmt.Sprintf("mongodb+srv://%s/", host), nil
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/",
		url.QueryEscape(s.User),
		url.QueryEscape(s.Password),
		host,
	), nil
}

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, s Settings) (*mongo.Client, error) {
	uri, err := BuildURI(s)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	timeout := s.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	telemetry.Info("mongo.connected", map[string]any{"host": redactedHost(uri)})
	return client, nil
}

func redactedHost(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Host
}
