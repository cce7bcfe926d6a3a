package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

const faqSelectPattern = `SELECT id, question, answer, role_visibility, active, created_at\s+FROM faqs\s+WHERE active = true\s+AND \(role_visibility = 'ALL' OR role_visibility = \$1\)\s+ORDER BY created_at, id`

func seedRows(faqs []models.FaqRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "question", "answer", "role_visibility", "active", "created_at"})
	for _, faq := range faqs {
		rows.AddRow(faq.ID, faq.Question, faq.Answer, faq.RoleVisibility, faq.Active, faq.CreatedAt)
	}
	return rows
}

func sampleFAQs() []models.FaqRecord {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.FaqRecord{
		{
			ID:             "faq-1",
			Question:       "When is the appraisal deadline?",
			Answer:         "The last business day of the cycle.",
			RoleVisibility: models.RoleVisibilityAll,
			Active:         true,
			CreatedAt:      created,
		},
		{
			ID:             "faq-2",
			Question:       "How do I review my team appraisals?",
			Answer:         "Open the Team Appraisals page.",
			RoleVisibility: models.RoleSupervisor,
			Active:         true,
			CreatedAt:      created.Add(time.Hour),
		},
	}
}

func TestFaqRepository_ListActiveFAQs_CacheMissLoadsFromPostgres(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	faqs := sampleFAQs()
	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleSupervisor).
		WillReturnRows(seedRows(faqs))

	cachedData, _ := json.Marshal(faqs)
	redisMock.ExpectGet("faqs:role:SUPERVISOR").RedisNil()
	redisMock.ExpectSet("faqs:role:SUPERVISOR", cachedData, 5*time.Minute).SetVal("OK")

	repo := NewFaqRepository(db, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	got, err := repo.ListActiveFAQs(context.Background(), models.RoleSupervisor)

	require.NoError(t, err)
	assert.Equal(t, faqs, got)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestFaqRepository_ListActiveFAQs_CacheHitSkipsPostgres(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	faqs := sampleFAQs()
	cachedData, _ := json.Marshal(faqs)
	redisMock.ExpectGet("faqs:role:EMPLOYEE").SetVal(string(cachedData))

	repo := NewFaqRepository(db, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	got, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)

	require.NoError(t, err)
	assert.Equal(t, faqs, got)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestFaqRepository_ListActiveFAQs_CacheErrorFallsBack(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	faqs := sampleFAQs()
	redisMock.ExpectGet("faqs:role:EMPLOYEE").SetErr(stderrors.New("connection refused"))
	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleEmployee).
		WillReturnRows(seedRows(faqs))

	cachedData, _ := json.Marshal(faqs)
	redisMock.ExpectSet("faqs:role:EMPLOYEE", cachedData, 5*time.Minute).SetErr(stderrors.New("connection refused"))

	repo := NewFaqRepository(db, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	got, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)

	require.NoError(t, err, "cache failures must not surface")
	assert.Equal(t, faqs, got)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFaqRepository_ListActiveFAQs_CorruptCacheReloads(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	faqs := sampleFAQs()
	redisMock.ExpectGet("faqs:role:EMPLOYEE").SetVal("{not json")
	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleEmployee).
		WillReturnRows(seedRows(faqs))

	cachedData, _ := json.Marshal(faqs)
	redisMock.ExpectSet("faqs:role:EMPLOYEE", cachedData, 5*time.Minute).SetVal("OK")

	repo := NewFaqRepository(db, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	got, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)

	require.NoError(t, err)
	assert.Equal(t, faqs, got)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFaqRepository_ListActiveFAQs_PostgresErrorSurfaces(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleEmployee).
		WillReturnError(stderrors.New("connection reset"))

	repo := NewFaqRepository(db, nil, 5*time.Minute, logger.NewNoOpLogger())

	_, err = repo.ListActiveFAQs(context.Background(), models.RoleEmployee)

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeFaqCorpusUnavailable, stdErr.Code)
}

func TestFaqRepository_ListActiveFAQs_NoCacheConfigured(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	faqs := sampleFAQs()
	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleEmployee).
		WillReturnRows(seedRows(faqs))

	repo := NewFaqRepository(db, nil, 5*time.Minute, logger.NewNoOpLogger())

	got, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)

	require.NoError(t, err)
	assert.Equal(t, faqs, got)
}

func TestFaqRepository_CacheRoundTripWithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	faqs := sampleFAQs()

	// Only one database round-trip is expected; the second call must be
	// served from the cache.
	dbMock.ExpectQuery(faqSelectPattern).
		WithArgs(models.RoleEmployee).
		WillReturnRows(seedRows(faqs))

	repo := NewFaqRepository(db, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	first, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)
	require.NoError(t, err)
	second, err := repo.ListActiveFAQs(context.Background(), models.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.True(t, mr.Exists("faqs:role:EMPLOYEE"))
}

func TestFaqRepository_UpsertFAQ(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	faq := sampleFAQs()[0]
	dbMock.ExpectExec(`INSERT INTO faqs`).
		WithArgs(faq.ID, faq.Question, faq.Answer, faq.RoleVisibility, faq.Active).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewFaqRepository(db, nil, 5*time.Minute, logger.NewNoOpLogger())

	err = repo.UpsertFAQ(context.Background(), faq)

	require.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFaqRepository_InvalidateCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	require.NoError(t, mr.Set("faqs:role:EMPLOYEE", "[]"))
	require.NoError(t, mr.Set("faqs:role:SUPERVISOR", "[]"))

	repo := NewFaqRepository(nil, redisClient, 5*time.Minute, logger.NewNoOpLogger())

	repo.InvalidateCache(context.Background())

	assert.False(t, mr.Exists("faqs:role:EMPLOYEE"))
	assert.False(t, mr.Exists("faqs:role:SUPERVISOR"))
}
