package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lumina_back_end/internal/middleware"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
	"lumina_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Remplissez les champs obligatoires"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création utilisateur"})
		return
	}

	newUser := models.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
	}

	err = storage.Users.Mutate(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == input.Email {
				return nil, errEmailTaken
			}
		}
		return append(users, newUser), nil
	})
	if errors.Is(err, errEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email déjà utilisé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création utilisateur"})
		return
	}

	if err := createSession(c, newUser.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"user":    gin.H{"id": newUser.ID, "name": newUser.Name, "email": newUser.Email},
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Remplissez les champs"})
		return
	}

	users, err := storage.Users.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture utilisateurs"})
		return
	}

	var found *models.User
	for i := range users {
		if users[i].Email == input.Email {
			found = &users[i]
			break
		}
	}
	if found == nil || !utils.VerifyPassword(input.Password, found.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email ou mot de passe incorrect"})
		return
	}

	if err := createSession(c, found.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"user":    gin.H{"id": found.ID, "name": found.Name, "email": found.Email},
	})
}

func Me(c *gin.Context) {
	u, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Non authentifié"})
		return
	}
	me := u.(models.User)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{"id": me.ID, "name": me.Name, "email": me.Email},
	})
}

func Logout(c *gin.Context) {
	sessionID, err := c.Cookie(middleware.SessionCookie)
	if err == nil && sessionID != "" {
		_ = storage.Users.Mutate(func(users []models.User) ([]models.User, error) {
			for i := range users {
				if users[i].SessionID == sessionID {
					users[i].SessionID = ""
					users[i].SessionExpires = 0
					break
				}
			}
			return users, nil
		})
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion effectuée"})
}

// ================== UTILITAIRES ==================

var errEmailTaken = errors.New("email déjà utilisé")

// createSession génère un token de session opaque, l'enregistre sur
// l'utilisateur avec une expiration à 10 minutes et pose le cookie.
func createSession(c *gin.Context, userID string) error {
	sessionID := uuid.NewString()
	expires := time.Now().Add(middleware.SessionTTL).UnixMilli()

	err := storage.Users.Mutate(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].SessionID = sessionID
				users[i].SessionExpires = expires
				break
			}
		}
		return users, nil
	})
	if err != nil {
		return err
	}

	c.SetCookie(middleware.SessionCookie, sessionID,
		int(middleware.SessionTTL.Seconds()), "/", "", false, true)
	return nil
}
