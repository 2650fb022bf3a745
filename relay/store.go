package relay

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
)

// EnvelopeStore archives submitted envelopes. The archive is write-mostly;
// reads serve operators inspecting traffic, not the delivery path.
type EnvelopeStore interface {
	SaveEnvelope(signed *omega.Signed[omega.Envelope]) error
	LoadRecentEnvelopes(limit int) ([]*omega.Signed[omega.Envelope], error)
	Close() error
}

// PostgresStore implements EnvelopeStore with PostgreSQL persistence.
type PostgresStore struct {
	db *sql.DB
}

// PostgresConfig contains PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// ConnectionString returns the PostgreSQL connection string.
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(config *PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS envelopes (
		id UUID PRIMARY KEY,
		vector BYTEA NOT NULL,
		epoch BIGINT NOT NULL,
		sent_at TIMESTAMP WITH TIME ZONE NOT NULL,
		signature BYTEA NOT NULL,
		signer_public_key VARCHAR(128) NOT NULL,
		received_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_envelopes_received ON envelopes(received_at);
	CREATE INDEX IF NOT EXISTS idx_envelopes_signer ON envelopes(signer_public_key);
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveEnvelope persists a signed envelope.
func (s *PostgresStore) SaveEnvelope(signed *omega.Signed[omega.Envelope]) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	env := signed.Object
	vectorData, err := env.Vector.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding vector: %w", err)
	}

	query := `
	INSERT INTO envelopes
		(id, vector, epoch, sent_at, signature, signer_public_key)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING
	`

	_, err = s.db.ExecContext(ctx, query,
		env.ID,
		vectorData,
		int64(env.Epoch),
		env.SentAt,
		signed.Signature.Bytes(),
		signed.PublicKey.String(),
	)
	return err
}

// LoadRecentEnvelopes retrieves the most recently received envelopes.
func (s *PostgresStore) LoadRecentEnvelopes(limit int) ([]*omega.Signed[omega.Envelope], error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vector, epoch, sent_at, signature, signer_public_key
		FROM envelopes
		ORDER BY received_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*omega.Signed[omega.Envelope]
	for rows.Next() {
		var (
			id           uuid.UUID
			vectorData   []byte
			epoch        int64
			sentAt       time.Time
			signature    []byte
			signerPubKey string
		)

		if err := rows.Scan(&id, &vectorData, &epoch, &sentAt, &signature, &signerPubKey); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var vector omega.Vector
		if err := vector.UnmarshalBinary(vectorData); err != nil {
			continue
		}

		signerKey, err := crypto.NewPublicKeyFromString(signerPubKey)
		if err != nil {
			continue
		}

		result = append(result, &omega.Signed[omega.Envelope]{
			PublicKey: signerKey,
			Signature: crypto.NewSignature(signature),
			Object: &omega.Envelope{
				ID:     id,
				Vector: vector,
				Epoch:  uint64(epoch),
				SentAt: sentAt,
			},
		})
	}

	return result, rows.Err()
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InMemoryStore implements EnvelopeStore for testing without a database.
type InMemoryStore struct {
	mu        sync.Mutex
	envelopes []*omega.Signed[omega.Envelope]
}

// NewInMemoryStore creates an in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveEnvelope stores an envelope in memory.
func (s *InMemoryStore) SaveEnvelope(signed *omega.Signed[omega.Envelope]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, signed)
	return nil
}

// LoadRecentEnvelopes returns the most recently stored envelopes.
func (s *InMemoryStore) LoadRecentEnvelopes(limit int) ([]*omega.Signed[omega.Envelope], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.envelopes)
	if limit > n {
		limit = n
	}
	result := make([]*omega.Signed[omega.Envelope], 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, s.envelopes[i])
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
