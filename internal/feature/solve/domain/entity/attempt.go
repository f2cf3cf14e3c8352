package entity

import "time"

// Outcome は1リクエストの最終状態を表します。
type Outcome string

const (
	OutcomeSolved Outcome = "solved"
	OutcomeFailed Outcome = "failed"
)

// SolveAttempt は1回の解答リクエストの運用メタデータです。
// 画像や解答本文は含みません。
type SolveAttempt struct {
	RequestID     string
	Outcome       Outcome
	ErrorKind     string // 失敗時のみ（domain.KindOf の値）
	FormulaLength int    // 認識されたLaTeXのバイト数
	Duration      time.Duration
	CreatedAt     time.Time
}
