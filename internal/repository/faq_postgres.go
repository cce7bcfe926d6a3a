// Package repository holds the persistence adapters behind the assistant:
// the Postgres FAQ corpus with its Redis cache and the Elasticsearch
// interaction store.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

const listActiveFaqsQuery = `
	SELECT id, question, answer, role_visibility, active, created_at
	FROM faqs
	WHERE active = true
	  AND (role_visibility = 'ALL' OR role_visibility = $1)
	ORDER BY created_at, id`

const upsertFaqQuery = `
	INSERT INTO faqs (id, question, answer, role_visibility, active, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (id) DO UPDATE SET
		question        = EXCLUDED.question,
		answer          = EXCLUDED.answer,
		role_visibility = EXCLUDED.role_visibility,
		active          = EXCLUDED.active`

// FaqRepository reads the FAQ corpus from Postgres with a per-role Redis
// cache in front. Cache failures on either path degrade to the database;
// only a database failure surfaces as an error.
type FaqRepository struct {
	db       *sql.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewFaqRepository(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *FaqRepository {
	return &FaqRepository{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func faqCacheKey(role string) string {
	return fmt.Sprintf("faqs:role:%s", role)
}

// ListActiveFAQs returns the active FAQs visible to the role, ordered by
// creation time. Visibility is ALL or an exact role match.
func (r *FaqRepository) ListActiveFAQs(ctx context.Context, role string) ([]models.FaqRecord, error) {
	key := faqCacheKey(role)

	if r.cache != nil {
		raw, err := r.cache.Get(ctx, key).Result()
		switch {
		case err == nil:
			var faqs []models.FaqRecord
			if jsonErr := json.Unmarshal([]byte(raw), &faqs); jsonErr == nil {
				return faqs, nil
			}
			r.logger.Warn("corrupt FAQ cache entry, reloading from postgres", map[string]interface{}{
				"key": key,
			})
		case err != redis.Nil:
			r.logger.Warn("FAQ cache read failed, falling back to postgres", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	faqs, err := r.queryActiveFAQs(ctx, role)
	if err != nil {
		return nil, errors.NewFaqCorpusUnavailableError(err)
	}

	if r.cache != nil {
		if data, jsonErr := json.Marshal(faqs); jsonErr == nil {
			if setErr := r.cache.Set(ctx, key, data, r.cacheTTL).Err(); setErr != nil {
				r.logger.Warn("FAQ cache write failed", map[string]interface{}{
					"key":   key,
					"error": setErr.Error(),
				})
			}
		}
	}

	return faqs, nil
}

func (r *FaqRepository) queryActiveFAQs(ctx context.Context, role string) ([]models.FaqRecord, error) {
	rows, err := r.db.QueryContext(ctx, listActiveFaqsQuery, role)
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()

	faqs := make([]models.FaqRecord, 0)
	for rows.Next() {
		var faq models.FaqRecord
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.RoleVisibility, &faq.Active, &faq.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		faqs = append(faqs, faq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq rows: %w", err)
	}

	return faqs, nil
}

// UpsertFAQ inserts or updates one FAQ by ID. Used by the faq-loader tool.
func (r *FaqRepository) UpsertFAQ(ctx context.Context, faq models.FaqRecord) error {
	if _, err := r.db.ExecContext(ctx, upsertFaqQuery,
		faq.ID, faq.Question, faq.Answer, faq.RoleVisibility, faq.Active); err != nil {
		return fmt.Errorf("upsert faq %s: %w", faq.ID, err)
	}
	return nil
}

// InvalidateCache drops the per-role cache entries so the next read reloads
// from Postgres. Best-effort.
func (r *FaqRepository) InvalidateCache(ctx context.Context) {
	if r.cache == nil {
		return
	}

	keys := []string{
		faqCacheKey(models.RoleEmployee),
		faqCacheKey(models.RoleSupervisor),
		faqCacheKey(models.RoleHRAdmin),
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("FAQ cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
