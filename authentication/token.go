package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"showcase-api/helpers"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/twinj/uuid"
)

// AT is the key of the access token inside the token cookie
const AT = "access_token"

// UserIDKey holds the authenticated user in the gin context
const UserIDKey = "userID"

// custom error types
var (
	ErrUnauthorized = errors.New("unauthorized") // invalid token/cookie
	ErrNotLoggedIn  = errors.New("requires authorization")
)

// TokenDetails enthält die Daten vom AT
type TokenDetails struct {
	AccessToken string
	AccessUUID  string
	AtExpires   int64
}

// AccessDetails Token Metadata für die Registry (Key/Value redis)
type AccessDetails struct {
	TokenUUID string
	UserID    string
}

// Authenticator verifies tokens issued by the identity service
type Authenticator struct {
	Secret        []byte
	CookieName    string
	CookieHashKey []byte
	Store         TokenStore
}

// CreateToken erzeugt ein Access Token (used by the identity service and tests)
func (a *Authenticator) CreateToken(userID string) (*TokenDetails, error) {
	var err error
	td := &TokenDetails{}

	td.AtExpires = time.Now().Add(time.Minute * 15).Unix() // default 15 min
	td.AccessUUID = "at_" + uuid.NewV4().String()

	atClaims := jwt.MapClaims{}
	atClaims["authorized"] = true
	atClaims["access_uuid"] = td.AccessUUID
	atClaims["user_id"] = userID
	atClaims["exp"] = td.AtExpires

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, atClaims)
	td.AccessToken, err = at.SignedString(a.Secret)
	if err != nil {
		return nil, err
	}

	return td, nil
}

// CreateAuth speichert die Metadaten vom Token in der Registry
func (a *Authenticator) CreateAuth(ctx context.Context, userID string, td *TokenDetails) error {
	ttl := time.Until(time.Unix(td.AtExpires, 0))
	return a.Store.Register(ctx, td.AccessUUID, userID, ttl)
}

// SetTokenCookie sends the token as a signed server-side cookie
func (a *Authenticator) SetTokenCookie(w http.ResponseWriter, td *TokenDetails) error {
	tokens := map[string]string{
		AT: td.AccessToken,
	}
	return helpers.SetCookie(w, a.CookieName, a.CookieHashKey, tokens)
}

// ExtractToken liefert ein noch verschlüsseltes Token
// (Authorization header first, then the token cookie)
func (a *Authenticator) ExtractToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.Split(h, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", ErrUnauthorized
		}
		return parts[1], nil
	}

	cval, err := helpers.GetCookie(r, a.CookieName, a.CookieHashKey)
	if err != nil {
		return "", ErrNotLoggedIn
	}

	tokens := make(map[string]string)
	err = json.Unmarshal(cval, &tokens)
	if err != nil {
		return "", ErrUnauthorized
	}

	if tokens[AT] == "" {
		return "", ErrNotLoggedIn
	}
	return tokens[AT], nil
}

// VerifyToken prüft die Signatur
func (a *Authenticator) VerifyToken(r *http.Request) (*jwt.Token, error) {
	tokenString, err := a.ExtractToken(r)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		//Make sure the token method conforms to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.Secret, nil
	})
	if err != nil {
		return nil, ErrUnauthorized
	}
	return token, nil
}

// ExtractTokenMetadata Metadata auslesen (für Redis-Zugriff)
func (a *Authenticator) ExtractTokenMetadata(r *http.Request) (*AccessDetails, error) {
	token, err := a.VerifyToken(r)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}

	accessUUID, ok := claims["access_uuid"].(string)
	if !ok {
		return nil, ErrUnauthorized
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrUnauthorized
	}

	return &AccessDetails{
		TokenUUID: accessUUID,
		UserID:    userID,
	}, nil
}

// Authenticate prüft die Berechtigung zur Ausführung einer Route
// und liefert die UserID zurück
func (a *Authenticator) Authenticate(r *http.Request) (string, error) {
	tokenAuth, err := a.ExtractTokenMetadata(r)
	if err != nil {
		return "", err
	}

	userID, err := a.Store.Lookup(r.Context(), tokenAuth.TokenUUID)
	if err != nil {
		return "", err
	}

	// registry and token must agree
	if userID != tokenAuth.UserID {
		return "", ErrUnauthorized
	}

	return userID, nil
}

// IsAuthenticatedUser rejects requests without a valid, registered access token
// and passes the user id to the handlers
func (a *Authenticator) IsAuthenticatedUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := a.Authenticate(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": ErrNotLoggedIn.Error()})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user of the request ("" for visitors)
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
