package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/chmike/securecookie"
)

// https://github.com/chmike/securecookie

var cookieParams = securecookie.Params{
	Path:     "/",              // cookie received only when URL starts with this path
	Domain:   "",               // cookie received only when URL domain matches this one
	MaxAge:   3600 * 24 * 7,    // cookie becomes invalid 1 week after it is set (default 3600 seconds)
	HTTPOnly: true,             // disallow access by remote javascript code
	Secure:   false,            // cookie received only with HTTPS, never with HTTP
	SameSite: securecookie.Lax, // cookie received with same or sub-domain names
}

// SetCookie writes value as a signed and encrypted cookie
func SetCookie(w http.ResponseWriter, name string, hashKey []byte, value interface{}) error {

	sck, err := securecookie.New(name, hashKey, cookieParams)
	if err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return sck.SetValue(w, b)
}

// GetCookie reads and decodes a cookie written by SetCookie
func GetCookie(r *http.Request, name string, hashKey []byte) ([]byte, error) {

	sck, err := securecookie.New(name, hashKey, cookieParams)
	if err != nil {
		return nil, err
	}

	return sck.GetValue(nil, r)
}
