package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/platform/querier"
	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

const IdempotencyKeyHeader = "Idempotency-Key"

var ErrIdempotencyConflict = errors.New("idempotency key conflicts with existing request")

type StoredResponse struct {
	Status int
	Body   json.RawMessage
}

type IdempotencyKeeper interface {
	Check(ctx context.Context, principal, endpoint, key, requestHash string) (StoredResponse, bool, error)
	Save(ctx context.Context, principal, endpoint, key, requestHash string, resp StoredResponse) error
}

type IdempotencyStore struct {
	db querier.Querier
}

func NewIdempotencyStore(db querier.Querier) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (s *IdempotencyStore) Check(ctx context.Context, principal, endpoint, key, requestHash string) (StoredResponse, bool, error) {
	var storedHash string
	var resp StoredResponse
	err := s.db.QueryRow(ctx, `
    SELECT request_hash, status, response_json
    FROM idempotency_keys
    WHERE principal = $1 AND key = $2 AND endpoint = $3
  `, principal, key, endpoint).Scan(&storedHash, &resp.Status, &resp.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, err
	}
	if storedHash != requestHash {
		return StoredResponse{}, false, ErrIdempotencyConflict
	}
	return resp, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, principal, endpoint, key, requestHash string, resp StoredResponse) error {
	tag, err := s.db.Exec(ctx, `
    INSERT INTO idempotency_keys (principal, key, endpoint, request_hash, status, response_json)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (principal, key, endpoint)
    DO UPDATE SET response_json = EXCLUDED.response_json, status = EXCLUDED.status
    WHERE idempotency_keys.request_hash = EXCLUDED.request_hash
  `, principal, key, endpoint, requestHash, resp.Status, resp.Body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIdempotencyConflict
	}
	return nil
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST that repeats an
// Idempotency-Key with the same body, and refuses the key with a different body.
// Only successful responses are stored.
func Idempotency(keeper IdempotencyKeeper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				shared.WriteError(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			principal := "anonymous"
			if p, ok := auth.PrincipalFrom(r.Context()); ok {
				principal = p.Name
			}
			endpoint := r.URL.Path
			hash := RequestHash(raw)

			stored, found, err := keeper.Check(r.Context(), principal, endpoint, key, hash)
			switch {
			case errors.Is(err, ErrIdempotencyConflict):
				api.Fail(w, r, http.StatusConflict, "idempotency key reused with a different payload")
				return
			case err != nil:
				shared.WriteError(w, r, err)
				return
			case found:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			capture := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			if capture.status < 200 || capture.status >= 300 {
				return
			}
			resp := StoredResponse{Status: capture.status, Body: bytes.TrimSpace(capture.body.Bytes())}
			if len(resp.Body) == 0 {
				resp.Body = json.RawMessage("null")
			}
			if err := keeper.Save(r.Context(), principal, endpoint, key, hash, resp); err != nil {
				requestctx.Logger(r.Context()).WithError(err).Warn("idempotency save failed")
			}
		})
	}
}
