package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
)

const (
	SessionCookie = "sessionId"
	SessionTTL    = 10 * time.Minute
)

var errNoSession = errors.New("session inconnue ou expirée")

// AuthRequired vérifie le cookie de session et fait glisser l'expiration de
// 10 minutes à chaque requête authentifiée (session glissante).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Non authentifié"})
			c.Abort()
			return
		}

		var current models.User
		now := time.Now().UnixMilli()
		newExpires := time.Now().Add(SessionTTL).UnixMilli()

		// Le glissement d'expiration n'est écrit que si la session est valide
		err = storage.Users.Mutate(func(users []models.User) ([]models.User, error) {
			for i := range users {
				if users[i].SessionID == sessionID && users[i].SessionExpires > now {
					users[i].SessionExpires = newExpires
					current = users[i]
					return users, nil
				}
			}
			return nil, errNoSession
		})
		if errors.Is(err, errNoSession) {
			// Session inconnue ou expirée : on nettoie le cookie côté client
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session expirée ou invalide"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture utilisateurs"})
			c.Abort()
			return
		}

		c.Set("user_id", current.ID)
		c.Set("user", current)
		c.Next()
	}
}
