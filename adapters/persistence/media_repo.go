package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var mediaColumns = []string{
	"id", "owner_id", "kind", "provider", "url", "thumbnail_url",
	"status", "metadata", "created_at", "updated_at",
}

type postgresMediaRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresMediaRepo(db *pgxpool.Pool, logger logger.Logger) media.Repository {
	return &postgresMediaRepo{db: db, logger: logger}
}

func scanMedia(row pgx.Row, l logger.Logger) (*media.Media, error) {
	m := &media.Media{}
	var metadataBytes []byte
	var thumbURL sql.NullString

	err := row.Scan(
		&m.ID, &m.OwnerID, &m.Kind, &m.Provider, &m.URL,
		&thumbURL, &m.Status, &metadataBytes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("media", "")
		}
		return nil, apperror.NewInternal("failed to scan media row", err)
	}

	if thumbURL.Valid {
		m.ThumbnailURL = &thumbURL.String
	}
	if err := json.Unmarshal(metadataBytes, &m.Metadata); err != nil {
		l.Warn("Media metadata is malformed, using empty map", zap.String("media_id", m.ID.String()))
		m.Metadata = map[string]any{}
	}
	return m, nil
}

func (r *postgresMediaRepo) Save(ctx context.Context, m *media.Media) error {
	metadataBytes, err := json.Marshal(m.Metadata)
	if err != nil {
		return apperror.NewInternal("failed to marshal media metadata", err)
	}

	query, args, err := psql.Insert("media").
		Columns(mediaColumns...).
		Values(m.ID, m.OwnerID, m.Kind, m.Provider, m.URL, m.ThumbnailURL,
			m.Status, metadataBytes, m.CreatedAt, m.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build save media query", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save media", err)
	}
	return nil
}

func (r *postgresMediaRepo) Update(ctx context.Context, m *media.Media) error {
	metadataBytes, err := json.Marshal(m.Metadata)
	if err != nil {
		return apperror.NewInternal("failed to marshal media metadata", err)
	}

	query, args, err := psql.Update("media").
		Set("url", m.URL).
		Set("thumbnail_url", m.ThumbnailURL).
		Set("status", m.Status).
		Set("metadata", metadataBytes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": m.ID, "owner_id": m.OwnerID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update media query", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update media", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("media", m.ID.String())
	}
	return nil
}

func (r *postgresMediaRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*media.Media, error) {
	query, args, err := psql.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find media query", err)
	}
	return scanMedia(r.db.QueryRow(ctx, query, args...), r.logger)
}

func (r *postgresMediaRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*media.Media, error) {
	query, args, err := psql.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list media by owner query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query media by owner", err)
	}
	defer rows.Close()

	medias := make([]*media.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows, r.logger)
		if err != nil {
			return nil, err
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating media rows", err)
	}
	return medias, nil
}
