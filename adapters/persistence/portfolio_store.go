package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	upsertMerge   = "ON CONFLICT (user_id) DO UPDATE SET document = portfolios.document || EXCLUDED.document, updated_at = EXCLUDED.updated_at"
	upsertReplace = "ON CONFLICT (user_id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at"
)

// postgresPortfolioStore keeps one jsonb document per user. A merge write
// combines top-level keys with the stored document.
type postgresPortfolioStore struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioStore(db *pgxpool.Pool, logger logger.Logger) portfolio.DocumentStore {
	return &postgresPortfolioStore{db: db, logger: logger}
}

func (r *postgresPortfolioStore) Get(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	query, args, err := psql.Select("document").
		From("portfolios").
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build get portfolio query", err)
	}

	var raw []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", userID)
		}
		return nil, apperror.NewStoreUnavailable("failed to read portfolio", err)
	}

	p := &portfolio.Portfolio{}
	if err := json.Unmarshal(raw, p); err != nil {
		r.logger.Error("Stored portfolio document is malformed", err, zap.String("owner_id", userID))
		return nil, apperror.NewStoreUnavailable("stored portfolio document is malformed", err)
	}
	p.Normalize()
	return p, nil
}

func (r *postgresPortfolioStore) Set(ctx context.Context, userID string, doc *portfolio.Portfolio, opts portfolio.SetOptions) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperror.NewInternal("failed to marshal portfolio", err)
	}

	suffix := upsertReplace
	if opts.Merge {
		suffix = upsertMerge
	}
	query, args, err := psql.Insert("portfolios").
		Columns("user_id", "document", "updated_at").
		Values(userID, raw, doc.UpdatedAt).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build upsert portfolio query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewStoreUnavailable("failed to write portfolio", err)
	}
	return nil
}
