package controllers

import (
	"errors"
	"log"
	"net/http"
	"ticketpro/src/auth"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"ticketpro/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthLogin checks the posted credentials and opens a session. The token
// id doubles as the session id.
func AuthLogin(ctx *gin.Context, authenticator *auth.Authenticator, sessions auth.SessionStore, secret []byte, ttl time.Duration) (*LoginResponse, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	user, err := authenticator.Login(ctx.Request.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, http.StatusUnauthorized, err
		}
		log.Printf("Error logging in: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}

	sid := uuid.NewString()
	if err := sessions.Save(ctx.Request.Context(), sid, user, ttl); err != nil {
		log.Printf("Error saving session for user [%s]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	token, err := utils.GenerateJWT(user, sid, secret, ttl)
	if err != nil {
		log.Printf("Error signing token for user [%s]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	log.Printf("User [%s] logged in\n", user.Username)
	return &LoginResponse{Token: token, User: user}, http.StatusOK, nil
}

// AuthLogout clears the session behind the current token.
func AuthLogout(ctx *gin.Context, sessions auth.SessionStore) (int, error) {
	sid := ctx.GetString("sid")
	if sid == "" {
		return http.StatusUnauthorized, auth.ErrSessionNotFound
	}
	if err := sessions.Clear(ctx.Request.Context(), sid); err != nil {
		log.Printf("Error clearing session: %s\n", err.Error())
		return http.StatusInternalServerError, err
	}
	return http.StatusNoContent, nil
}

// CurrentUser returns the user stored by the auth middleware.
func CurrentUser(ctx *gin.Context) *models.User {
	v, ok := ctx.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
