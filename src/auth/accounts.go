package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type account struct {
	user     models.User
	password string
}

// Demo accounts. This is a stand-in for a real identity provider.
var accounts = map[string]account{
	"admin": {
		user:     models.User{ID: "1", Username: "admin", Email: "admin@ticketpro.com", Role: types.ROLE_ADMIN},
		password: "admin123",
	},
	"user": {
		user:     models.User{ID: "2", Username: "user", Email: "user@ticketpro.com", Role: types.ROLE_USER},
		password: "user123",
	},
	"demo": {
		user:     models.User{ID: "3", Username: "demo", Email: "demo@ticketpro.com", Role: types.ROLE_USER},
		password: "demo123",
	},
}

type Authenticator struct {
	// Delay simulates a round trip to an identity service.
	Delay time.Duration
}

func NewAuthenticator(delay time.Duration) *Authenticator {
	return &Authenticator{Delay: delay}
}

// Login checks the credentials against the demo accounts. Failures never
// say which part was wrong.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.User, error) {
	if err := sleep(ctx, a.Delay); err != nil {
		return nil, err
	}
	acc, ok := accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok || subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	user := acc.user
	return &user, nil
}

// LookupUser returns the demo account with the given id.
func LookupUser(id string) (*models.User, bool) {
	for _, acc := range accounts {
		if acc.user.ID == id {
			user := acc.user
			return &user, true
		}
	}
	return nil, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
