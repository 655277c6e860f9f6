// Package blobstore stores uploaded files inside Postgres as a metadata row
// plus ordered binary chunks. Uploads run inside the caller's transaction so
// a file and its owning record commit or roll back together.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// ChunkSize is the maximum size of a single stored chunk.
const ChunkSize = 255 * 1024

// FileInfo describes a stored blob.
type FileInfo struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Length      int64
	CreatedAt   time.Time
}

// Store reads and writes chunked blobs.
type Store struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewStore creates a blob store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UploadTx streams r into chunk rows using tx and returns the blob metadata.
// The caller owns the transaction; nothing is committed here. The exam_files
// row goes in before any chunk so the chunk foreign key has a parent, and
// its length is settled in a final update once the stream is exhausted.
func (s *Store) UploadTx(ctx context.Context, tx pgx.Tx, filename, contentType string, r io.Reader) (*FileInfo, error) {
	id := uuid.New()
	now := time.Now()

	query, args, err := s.psql.Insert("exam_files").
		Columns("id", "filename", "content_type", "length", "created_at").
		Values(id, filename, contentType, 0, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build file insert: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to write file metadata: %w", err)
	}

	buf := make([]byte, ChunkSize)
	var total int64
	seq := 0
	for {
		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			query, args, err := s.psql.Insert("exam_file_chunks").
				Columns("file_id", "seq", "data").
				Values(id, seq, chunk).
				ToSql()
			if err != nil {
				return nil, fmt.Errorf("failed to build chunk insert: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return nil, fmt.Errorf("failed to write chunk %d: %w", seq, err)
			}
			total += int64(n)
			seq++
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("failed to read upload: %w", readErr)
		}
	}

	query, args, err = s.psql.Update("exam_files").
		Set("length", total).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build length update: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to record blob length: %w", err)
	}

	logger.Debug().Str("blobId", id.String()).Int64("length", total).Msg("Blob stored")
	return &FileInfo{ID: id, Filename: filename, ContentType: contentType, Length: total, CreatedAt: now}, nil
}

// Stat returns metadata for a stored blob.
func (s *Store) Stat(ctx context.Context, id uuid.UUID) (*FileInfo, error) {
	query, args, err := s.psql.Select("id", "filename", "content_type", "length", "created_at").
		From("exam_files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stat query: %w", err)
	}

	var info FileInfo
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&info.ID, &info.Filename, &info.ContentType, &info.Length, &info.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to stat blob: %w", err)
	}
	return &info, nil
}

// Open streams the blob's chunks to w in order.
func (s *Store) Open(ctx context.Context, id uuid.UUID, w io.Writer) error {
	query, args, err := s.psql.Select("data").
		From("exam_file_chunks").
		Where(squirrel.Eq{"file_id": id}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build chunk query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to read chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan chunk: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to stream chunk: %w", err)
		}
	}
	return rows.Err()
}

// Delete removes a blob and its chunks. Deleting a missing blob returns
// ErrBlobNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	chunkQuery, chunkArgs, err := s.psql.Delete("exam_file_chunks").
		Where(squirrel.Eq{"file_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build chunk delete: %w", err)
	}
	if _, err := s.pool.Exec(ctx, chunkQuery, chunkArgs...); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	fileQuery, fileArgs, err := s.psql.Delete("exam_files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build file delete: %w", err)
	}
	tag, err := s.pool.Exec(ctx, fileQuery, fileArgs...)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBlobNotFound
	}
	return nil
}
