package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Identity bir isteğin sahibi: ya kayıtlı bir kullanıcı (e-posta ile) ya da
// anonim bir ziyaretçi (istemcinin ürettiği token ile). Rezervasyon ve katkı
// sahipliği her iki durumda da normalize edilmiş Key() üzerinden eşleştirilir.
type Identity struct {
	userID uint
	email  string
	token  string
}

// Registered kayıtlı kullanıcı kimliği oluşturur.
func Registered(userID uint, email string) Identity {
	return Identity{userID: userID, email: normalize(email)}
}

// Anonymous anonim ziyaretçi kimliği oluşturur.
func Anonymous(token string) Identity {
	return Identity{token: strings.TrimSpace(token)}
}

// Key rezervasyon/katkı kayıtlarına yazılan ve "benim mi?" eşleşmesinde
// kullanılan kimlik anahtarı.
func (i Identity) Key() string {
	if i.email != "" {
		return i.email
	}
	return i.token
}

// IsAnonymous kayıtlı bir kullanıcıya bağlı olup olmadığı.
func (i Identity) IsAnonymous() bool {
	return i.email == ""
}

// UserID kayıtlı kullanıcının ID'si, anonim kimlikte 0.
func (i Identity) UserID() uint {
	return i.userID
}

// Valid boş anahtarlı kimlik hiçbir aksiyon için geçerli değildir;
// bu bir istek hatasıdır, iş kuralı değil.
func (i Identity) Valid() bool {
	return i.Key() != ""
}

// NewAnonymousToken sunucu tarafında anonim token üretmek gerektiğinde
// (testler, demo seed) kullanılır. İstemciler kendi token'ını üretir.
func NewAnonymousToken() string {
	return uuid.NewString()
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
