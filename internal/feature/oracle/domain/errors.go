// Package domain はoracleフィーチャーのアプリケーションエラーを定義します。
package domain

import "errors"

// プロバイダ呼び出しの失敗はentity.Failureとして結果に載せるため、ここには含めません。
var (
	// ErrSessionNotFound はセッションIDに対応するセッションが存在しない場合に返されます。
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput は画像・ラベル・リフレクションの入力検証に失敗した場合に返されます。
	ErrInvalidInput = errors.New("invalid input")
)
