// Package digest はキャッシュキーやセッション用の入力ダイジェストを提供します。
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Sum は複数のパーツを区切り付きで連結したBLAKE2b-256ダイジェストを16進文字列で返します。
// パーツ境界を区切るため、("ab","c")と("a","bc")は異なるダイジェストになります。
func Sum(parts ...[]byte) string {
	h, _ := blake2b.New256(nil) // キーなしの場合エラーは発生しない
	for _, p := range parts {
		var n [8]byte
		l := uint64(len(p))
		for i := 0; i < 8; i++ {
			n[i] = byte(l >> (8 * i))
		}
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Strings は文字列パーツのダイジェストを返します。
func Strings(parts ...string) string {
	bs := make([][]byte, len(parts))
	for i, p := range parts {
		bs[i] = []byte(p)
	}
	return Sum(bs...)
}
