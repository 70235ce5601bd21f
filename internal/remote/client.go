package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accion2025/buencuidar/internal/logging"
)

// Config holds the connection settings for the hosted backend.
type Config struct {
	// Blob storage (S3-compatible endpoint).
	StorageEndpoint string
	StorageRegion   string
	StorageKey      string
	StorageSecret   string

	// Table access (Postgres DSN of the hosted database).
	DatabaseDSN string

	// RefreshToken identifies the stored session, when one exists.
	RefreshToken string
}

// Client implements Service against an S3-compatible store and Postgres.
type Client struct {
	cfg Config
	s3  *s3.Client
	db  *pgxpool.Pool
	log logging.Logger

	mu      sync.Mutex
	session *Session
}

var _ Service = (*Client)(nil)

// New builds a Client. Connections are established lazily; New fails only
// on unusable configuration.
func New(ctx context.Context, cfg Config, log logging.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageKey,
			cfg.StorageSecret,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		}
		o.UsePathStyle = true
	})

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}

	return &Client{cfg: cfg, s3: s3Client, db: pool, log: log}, nil
}

// SetRefreshToken replaces the stored session token and drops the cached
// session so the next GetSession revalidates.
func (c *Client) SetRefreshToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.RefreshToken = token
	c.session = nil
}

// Close releases the database pool. The storage client holds no resources.
func (c *Client) Close() {
	c.db.Close()
}
