package retrieve

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

type stubCorpus struct {
	faqs []models.FaqRecord
	err  error

	lastRole string
}

func (s *stubCorpus) ListActiveFAQs(ctx context.Context, role string) ([]models.FaqRecord, error) {
	s.lastRole = role
	if s.err != nil {
		return nil, s.err
	}
	return s.faqs, nil
}

func testFAQs() []models.FaqRecord {
	return []models.FaqRecord{
		{ID: "faq-1", Question: "How do I submit my appraisal form?", Answer: "Press Submit.", RoleVisibility: models.RoleVisibilityAll, Active: true},
		{ID: "faq-2", Question: "Submit the appraisal form today", Answer: "Today works.", RoleVisibility: models.RoleVisibilityAll, Active: true},
		{ID: "faq-3", Question: "Appraisal form archive", Answer: "See archive.", RoleVisibility: models.RoleVisibilityAll, Active: true},
		{ID: "faq-4", Question: "Appraisal form library", Answer: "See library.", RoleVisibility: models.RoleVisibilityAll, Active: true},
		{ID: "faq-5", Question: "Reset your password", Answer: "Use the link.", RoleVisibility: models.RoleVisibilityAll, Active: true},
	}
}

func TestRetriever_Retrieve_RanksAboveFloor(t *testing.T) {
	corpus := &stubCorpus{faqs: testFAQs()}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"submit my appraisal form"}, models.RoleEmployee, "submit_appraisal")

	require.NotNil(t, outcome.BestMatch)
	assert.Equal(t, "faq-1", outcome.BestMatch.FAQ.ID)
	assert.InDelta(t, 1.0, outcome.BestMatch.Similarity, 1e-9)

	// faq-5 shares nothing and faq-3/faq-4 tie below faq-2; ties keep
	// corpus order.
	require.Len(t, outcome.Alternatives, 3)
	assert.Equal(t, "faq-2", outcome.Alternatives[0].FAQ.ID)
	assert.Equal(t, "faq-3", outcome.Alternatives[1].FAQ.ID)
	assert.Equal(t, "faq-4", outcome.Alternatives[2].FAQ.ID)

	assert.Equal(t, models.RoleEmployee, corpus.lastRole)
}

func TestRetriever_Retrieve_BestMatchExcludedFromAlternatives(t *testing.T) {
	corpus := &stubCorpus{faqs: testFAQs()}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"submit my appraisal form"}, models.RoleEmployee, "")

	require.NotNil(t, outcome.BestMatch)
	for _, alt := range outcome.Alternatives {
		assert.NotEqual(t, outcome.BestMatch.FAQ.ID, alt.FAQ.ID)
	}
}

func TestRetriever_Retrieve_AlternativesCapped(t *testing.T) {
	corpus := &stubCorpus{faqs: testFAQs()}
	retriever := NewRetriever(corpus, 0.3, 2, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"submit my appraisal form"}, models.RoleEmployee, "")

	require.NotNil(t, outcome.BestMatch)
	assert.Len(t, outcome.Alternatives, 2)
}

func TestRetriever_Retrieve_BestVariantWins(t *testing.T) {
	corpus := &stubCorpus{faqs: []models.FaqRecord{
		{ID: "faq-due", Question: "What is the due date for submitting my appraisal?", RoleVisibility: models.RoleVisibilityAll, Active: true},
	}}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	variants := []string{
		"When is the appraisal deadline?",
		"When is the appraisal due date?",
	}

	outcome := retriever.Retrieve(context.Background(), variants, models.RoleEmployee, "")

	require.NotNil(t, outcome.BestMatch)
	assert.Equal(t, "faq-due", outcome.BestMatch.FAQ.ID)
	assert.InDelta(t, 0.75, outcome.BestMatch.Similarity, 1e-9)
}

func TestRetriever_Retrieve_NothingAboveFloor(t *testing.T) {
	corpus := &stubCorpus{faqs: testFAQs()}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"xyzzy frobnicate"}, models.RoleEmployee, "")

	assert.Nil(t, outcome.BestMatch)
	assert.Empty(t, outcome.Alternatives)
}

func TestRetriever_Retrieve_ScoreAtFloorIsExcluded(t *testing.T) {
	corpus := &stubCorpus{faqs: []models.FaqRecord{
		// Exactly one of four stems overlaps: similarity 0.25.
		{ID: "faq-x", Question: "Appraisal grading scale", RoleVisibility: models.RoleVisibilityAll, Active: true},
	}}
	retriever := NewRetriever(corpus, 0.25, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"appraisal deadline"}, models.RoleEmployee, "")

	assert.Nil(t, outcome.BestMatch, "floor comparison must be strict")
}

func TestRetriever_Retrieve_CorpusErrorDegradesToEmpty(t *testing.T) {
	corpus := &stubCorpus{err: errors.NewFaqCorpusUnavailableError(stderrors.New("postgres down"))}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"submit my appraisal form"}, models.RoleEmployee, "")

	assert.Nil(t, outcome.BestMatch)
	assert.Empty(t, outcome.Alternatives)
}

func TestRetriever_Retrieve_EmptyCorpus(t *testing.T) {
	corpus := &stubCorpus{faqs: nil}
	retriever := NewRetriever(corpus, 0.3, 3, logger.NewNoOpLogger())

	outcome := retriever.Retrieve(context.Background(), []string{"submit my appraisal form"}, models.RoleEmployee, "")

	assert.Nil(t, outcome.BestMatch)
	assert.Empty(t, outcome.Alternatives)
}
