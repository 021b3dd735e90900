package usecase

import "errors"

var (
	// ErrInvalidInput はリクエスト内容が不正な場合のエラーです。詳細はラップして返します。
	ErrInvalidInput = errors.New("invalid pitch request")
	// ErrPitchNotFound は指定IDのピッチが存在しない場合のエラーです。
	ErrPitchNotFound = errors.New("pitch not found")
	// ErrGenerationFailed はピッチ生成器の呼び出しに失敗した場合のエラーです。
	ErrGenerationFailed = errors.New("pitch generation failed")
)
