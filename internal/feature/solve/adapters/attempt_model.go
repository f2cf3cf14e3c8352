// Package adapters はsolveフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"math_solver/internal/feature/solve/domain/entity"
)

// AttemptModel は solve_attempts テーブルのGORMモデルです。
type AttemptModel struct {
	ID            uint      `gorm:"primaryKey"`
	RequestID     string    `gorm:"size:64;index"`
	Outcome       string    `gorm:"size:16;not null"`
	ErrorKind     string    `gorm:"size:32;index"`
	FormulaLength int       `gorm:"not null;default:0"`
	DurationMS    int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (AttemptModel) TableName() string {
	return "solve_attempts"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *AttemptModel) ToEntity() entity.SolveAttempt {
	return entity.SolveAttempt{
		RequestID:     m.RequestID,
		Outcome:       entity.Outcome(m.Outcome),
		ErrorKind:     m.ErrorKind,
		FormulaLength: m.FormulaLength,
		Duration:      time.Duration(m.DurationMS) * time.Millisecond,
		CreatedAt:     m.CreatedAt,
	}
}

// AttemptModelFromEntity はドメインエンティティをGORMモデルに変換します。
func AttemptModelFromEntity(a entity.SolveAttempt) *AttemptModel {
	return &AttemptModel{
		RequestID:     a.RequestID,
		Outcome:       string(a.Outcome),
		ErrorKind:     a.ErrorKind,
		FormulaLength: a.FormulaLength,
		DurationMS:    a.Duration.Milliseconds(),
		CreatedAt:     a.CreatedAt,
	}
}
