package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"math_solver/internal/feature/solve/domain/entity"
	"math_solver/internal/feature/solve/usecase"
)

// attemptGorm はAttemptRecorderインターフェースのGORM実装です。
type attemptGorm struct {
	db *gorm.DB
}

var _ usecase.AttemptRecorder = (*attemptGorm)(nil)

// NewAttemptRepository は指定されたDB接続でattemptGormの新しいインスタンスを生成します。
func NewAttemptRepository(db *gorm.DB) *attemptGorm {
	return &attemptGorm{db: db}
}

// Record は1件の解答試行を保存します。
func (r *attemptGorm) Record(ctx context.Context, a entity.SolveAttempt) error {
	if err := r.db.WithContext(ctx).Create(AttemptModelFromEntity(a)).Error; err != nil {
		return fmt.Errorf("failed to insert solve attempt: %w", err)
	}
	return nil
}

// CountByOutcome は結果種別ごとの件数を返します。
func (r *attemptGorm) CountByOutcome(ctx context.Context) (map[entity.Outcome]int64, error) {
	var rows []struct {
		Outcome string
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&AttemptModel{}).
		Select("outcome, count(*) as count").
		Group("outcome").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[entity.Outcome]int64, len(rows))
	for _, row := range rows {
		out[entity.Outcome(row.Outcome)] = row.Count
	}
	return out, nil
}
