package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes 是 bcrypt 的輸入上限；服務層驗證時要先擋
const MaxPasswordBytes = 72

// HashPassword 回傳 bcrypt hash（含鹽）；超過 72 bytes 直接回錯，不會默默截斷
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

// CheckPasswordHash 拿使用者輸入的明碼比對資料庫的 hash
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
