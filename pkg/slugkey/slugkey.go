package slugkey

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Public wishlist slug'ları: küçük harf + rakamdan oluşan 12 karakterlik
// rastgele anahtar. crypto/rand kullanılır; tahmin edilebilirlik slug'ın
// tek güvenlik özelliğidir.

const (
	KeyLength = 12
	alphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Generate KeyLength uzunluğunda yeni bir slug üretir.
// Benzersizlik kontrolü çağıranın işidir.
func Generate() (string, error) {
	return GenerateN(KeyLength)
}

// GenerateN n karakterlik rastgele anahtar üretir.
func GenerateN(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("slugkey: uzunluk pozitif olmalı")
	}
	buf := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
