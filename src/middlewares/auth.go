package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"ticketpro/src/auth"
	"ticketpro/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts a Bearer token signed with secret whose session is
// still present in sessions and whose subject is a known account. The session
// user is stored under "user".
func AuthMiddleware(secret []byte, sessions auth.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		reqToken, ok := strings.CutPrefix(bearerToken, "Bearer ")
		if !ok || strings.TrimSpace(reqToken) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(strings.TrimSpace(reqToken), claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tkn.Valid {
			if err != nil {
				log.Printf("token error: %s\n", err.Error())
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := sessions.Load(ctx, claims.ID)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				log.Printf("Error loading session: %s\n", err.Error())
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		if user.ID != claims.Subject {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if _, ok := auth.LookupUser(claims.Subject); !ok {
			log.Printf("token for unknown account [%s]\n", claims.Subject)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		ctx.Set("user", user)
		ctx.Set("sid", claims.ID)
		ctx.Set("username", user.Username)
		ctx.Set("role", user.Role)
		ctx.Next()
	}
}
