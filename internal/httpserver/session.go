// internal/httpserver/session.go
//
// Anonymous player identity. Every browser gets a random id packed into a
// signed cookie; it attributes history rows and nothing more. There are no
// accounts and no authorization attached to it.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	playerCookieName = "minesweeper_player"
	playerCookieTTL  = 180 * 24 * time.Hour
)

// ensurePlayerID returns the caller's stable anonymous id, minting a fresh
// one (and setting the cookie) when the cookie is absent or fails to verify.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		if id, err := s.parsePlayerToken(c.Value); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	tok, exp, err := s.signPlayerToken(id)
	if err != nil {
		// The request still gets an id; only persistence across visits is lost.
		log.Warn().Err(err).Msg("sign player token")
		return id
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    tok,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// signPlayerToken packs the player id into an HS256 JWT.
func (s *Server) signPlayerToken(id string) (string, time.Time, error) {
	exp := time.Now().Add(playerCookieTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id,
		"iat": time.Now().Unix(),
		"exp": exp.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.SecretKey))
	return ss, exp, err
}

// parsePlayerToken verifies a cookie value and extracts the player id.
func (s *Server) parsePlayerToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	id, _ := claims["sub"].(string)
	if id == "" {
		return "", errors.New("token missing subject")
	}
	return id, nil
}
