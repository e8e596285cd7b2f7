package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const serialAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var cities = []string{
	"Dubai", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Hyderabad",
	"Pune", "Ahmedabad", "Jaipur", "Kochi", "Goa", "Srinagar", "Amritsar",
	"Chandigarh", "Lucknow", "Varanasi", "Bhopal", "Indore", "Nagpur",
	"Aurangabad", "Nashik",
}

func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// IsCity reports whether name is in the city catalogue.
func IsCity(name string) bool {
	for _, c := range cities {
		if c == name {
			return true
		}
	}
	return false
}

func GenerateTicketId() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateSerialNumber returns TKT followed by the last six digits of the
// millisecond timestamp and three random base-36 characters.
func GenerateSerialNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	} else {
		ms = strings.Repeat("0", 6-len(ms)) + ms
	}
	var sb strings.Builder
	sb.WriteString("TKT")
	sb.WriteString(ms)
	base := big.NewInt(int64(len(serialAlphabet)))
	for i := 0; i < 3; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			n = big.NewInt(now.UnixNano() % int64(len(serialAlphabet)))
		}
		sb.WriteByte(serialAlphabet[n.Int64()])
	}
	return sb.String()
}

// GenerateJWT signs an HS256 token for user. sid becomes the token id and
// keys the server-side session.
func GenerateJWT(user *models.User, sid string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   user.ID,
			Issuer:    "ticketpro",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(secret)
}

// FormatDate renders YYYY-MM-DD as dd/MM/yyyy.
func FormatDate(date string) string {
	t, err := time.Parse(DATE_FORMAT, date)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format("02/01/2006")
}

// FormatTime renders HH:MM on a 12 hour clock.
func FormatTime(clock string) string {
	if clock == "" {
		return ""
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

// FormatCurrency renders whole rupees with Indian digit grouping.
func FormatCurrency(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	if len(digits) > 3 {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}
	return sign + "₹" + digits
}
