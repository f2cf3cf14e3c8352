package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"math_solver/internal/feature/solve/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&AttemptModel{}), "failed to migrate table")

	return db
}

func TestNewAttemptRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewAttemptRepository(db)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestAttemptGorm_Record(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewAttemptRepository(db)
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	err := repo.Record(context.Background(), entity.SolveAttempt{
		RequestID:     "req-1",
		Outcome:       entity.OutcomeSolved,
		FormulaLength: 11,
		Duration:      1500 * time.Millisecond,
		CreatedAt:     created,
	})
	require.NoError(t, err)

	var stored AttemptModel
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "solve_attempts", stored.TableName())

	got := stored.ToEntity()
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, entity.OutcomeSolved, got.Outcome)
	assert.Equal(t, 11, got.FormulaLength)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestAttemptGorm_Record_ClosedDB(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = NewAttemptRepository(db).Record(context.Background(), entity.SolveAttempt{RequestID: "x", Outcome: entity.OutcomeFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert solve attempt")
}

func TestAttemptGorm_CountByOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seed     []entity.Outcome
		expected map[entity.Outcome]int64
	}{
		{
			name:     "empty table",
			expected: map[entity.Outcome]int64{},
		},
		{
			name: "mixed outcomes",
			seed: []entity.Outcome{entity.OutcomeSolved, entity.OutcomeFailed, entity.OutcomeSolved},
			expected: map[entity.Outcome]int64{
				entity.OutcomeSolved: 2,
				entity.OutcomeFailed: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewAttemptRepository(setupTestDB(t))
			for _, o := range tt.seed {
				require.NoError(t, repo.Record(context.Background(), entity.SolveAttempt{RequestID: "r", Outcome: o, CreatedAt: time.Now()}))
			}

			counts, err := repo.CountByOutcome(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, counts)
		})
	}
}
