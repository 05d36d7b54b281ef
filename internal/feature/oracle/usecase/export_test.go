package usecase

import "time"

// SetClock はテストから時刻とID生成を差し替えます。
func (u *OracleUsecase) SetClock(now func() time.Time, newID func() string) {
	u.now = now
	u.newID = newID
}
