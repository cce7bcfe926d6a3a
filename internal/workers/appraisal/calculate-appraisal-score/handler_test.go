// internal/workers/appraisal/calculate-appraisal-score/handler_test.go
package calculateappraisalscore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:         3 * time.Second,
		WeightTolerance: 0.001,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func createTestInput() *Input {
	return &Input{
		AppraisalID: "appraisal-1",
		Sections: []models.AppraisalSection{
			{Name: "Delivery", Weight: 0.5, Rating: 90},
			{Name: "Collaboration", Weight: 0.3, Rating: 80},
			{Name: "Growth", Weight: 0.2, Rating: 70},
		},
	}
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		expectedTotal float64
		expectedGrade string
	}{
		{
			name:          "weighted average across sections",
			input:         createTestInput(),
			expectedTotal: 83.0, // 45 + 24 + 14
			expectedGrade: GradeExceeds,
		},
		{
			name: "perfect ratings",
			input: &Input{
				AppraisalID: "appraisal-2",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: 0.6, Rating: 100},
					{Name: "Growth", Weight: 0.4, Rating: 100},
				},
			},
			expectedTotal: 100.0,
			expectedGrade: GradeOutstanding,
		},
		{
			name: "single full weight section",
			input: &Input{
				AppraisalID: "appraisal-3",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: 1.0, Rating: 55},
				},
			},
			expectedTotal: 55.0,
			expectedGrade: GradeNeedsImprovement,
		},
		{
			name: "low ratings",
			input: &Input{
				AppraisalID: "appraisal-4",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: 0.5, Rating: 30},
					{Name: "Growth", Weight: 0.5, Rating: 20},
				},
			},
			expectedTotal: 25.0,
			expectedGrade: GradeUnsatisfactory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbMock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			dbMock.ExpectExec(`UPDATE appraisals`).
				WithArgs(tt.expectedTotal, tt.expectedGrade, tt.input.AppraisalID).
				WillReturnResult(sqlmock.NewResult(0, 1))

			handler := NewHandler(createTestConfig(), db, newTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.InDelta(t, tt.expectedTotal, output.TotalScore, 1e-9)
			assert.Equal(t, tt.expectedGrade, output.Grade)
			assert.Len(t, output.SectionScores, len(tt.input.Sections))
			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_FormValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{
			name:  "missing appraisal id",
			input: &Input{Sections: createTestInput().Sections},
		},
		{
			name:  "no sections",
			input: &Input{AppraisalID: "appraisal-1"},
		},
		{
			name: "rating above 100",
			input: &Input{
				AppraisalID: "appraisal-1",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: 1.0, Rating: 140},
				},
			},
		},
		{
			name: "negative weight",
			input: &Input{
				AppraisalID: "appraisal-1",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: -0.5, Rating: 80},
					{Name: "Growth", Weight: 1.5, Rating: 80},
				},
			},
		},
		{
			name: "weights do not sum to one",
			input: &Input{
				AppraisalID: "appraisal-1",
				Sections: []models.AppraisalSection{
					{Name: "Delivery", Weight: 0.5, Rating: 80},
					{Name: "Growth", Weight: 0.3, Rating: 80},
				},
			},
		},
		{
			name: "unnamed section",
			input: &Input{
				AppraisalID: "appraisal-1",
				Sections: []models.AppraisalSection{
					{Name: "", Weight: 1.0, Rating: 80},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Nil(t, output)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeFormValidationFailed, stdErr.Code)
		})
	}
}

func TestHandler_Execute_AppraisalMissing(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectExec(`UPDATE appraisals`).
		WithArgs(83.0, GradeExceeds, "appraisal-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeAppraisalNotFound, stdErr.Code)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, output)
}
