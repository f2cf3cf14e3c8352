// Package entity はsolveフィーチャーのドメインモデルを定義します。
package entity

import "io"

// UploadedImage はリクエスト中だけ存在するアップロード画像です。
type UploadedImage struct {
	Filename string    // クライアントが送信したファイル名（未サニタイズ）
	Size     int64     // バイト数
	Content  io.Reader // 画像データ
}

// SolutionResult は認識された数式とAIが生成した解答のペアです。
type SolutionResult struct {
	Solution string // ステップごとの解答テキスト
	Latex    string // 認識されたLaTeX数式
}
