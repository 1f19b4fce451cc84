package models

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"passwordHash"`
	// Session opaque avec expiration absolue (millisecondes unix).
	// L'expiration glisse de 10 minutes à chaque requête authentifiée.
	SessionID      string `json:"sessionId,omitempty"`
	SessionExpires int64  `json:"sessionExpires,omitempty"`
}
