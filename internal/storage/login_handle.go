package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 30 * 24 * time.Hour

type registerUser struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func decodeUser(r *http.Request) (registerUser, error) {
	register := registerUser{}
	if err := json.NewDecoder(r.Body).Decode(&register); err != nil {
		return register, err
	}
	if register.Login == "" || register.Password == "" {
		return register, fmt.Errorf("login and password are required")
	}
	return register, nil
}

func (s *storage) handleRegister(w http.ResponseWriter, r *http.Request) {
	register, err := decodeUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(register.Password), s.cfg.BcryptCost)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err := storeUser(r.Context(), s.db, register.Login, hashedPassword)
	if errors.Is(err, errorLoginTaken) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("user registered", "login", register.Login, "id", id)
	w.WriteHeader(http.StatusOK)
}

func (s *storage) handleLogin(w http.ResponseWriter, r *http.Request) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	register, err := decodeUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, hashedPassword, err := getUser(r.Context(), s.db, register.Login)
	if errors.Is(err, errorUnknownUser) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(register.Password)); err != nil {
		http.Error(w, "incorrect password", http.StatusBadRequest)
		return
	}

	tokenString, err := s.newToken(id, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenString)
}

func (s *storage) newToken(userId int64, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  strconv.FormatInt(userId, 10),
		"nbf": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString(s.cfg.Secret)
}

func (s *storage) validateToken(bearerToken string) (*jwt.Token, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	return jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
}

func (s *storage) getUserId(bearerToken string) (int64, error) {
	token, err := s.validateToken(bearerToken)
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errorUnknownUser
	}

	user, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errorUnknownUser
	}
	strId, ok := user["id"].(string)
	if !ok {
		return 0, errorUnknownUser
	}
	return strconv.ParseInt(strId, 10, 64)
}

// authorized resolves the Authorization header to a user id before calling h.
func (s *storage) authorized(h func(w http.ResponseWriter, r *http.Request, userId int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearerToken := r.Header.Get("Authorization")
		if bearerToken == "" {
			http.Error(w, `no header "Authorization"`, http.StatusUnauthorized)
			return
		}
		userId, err := s.getUserId(bearerToken)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h(w, r, userId)
	}
}
