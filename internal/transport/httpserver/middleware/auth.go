package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/pkg/logger"
)

type JWTAuth struct {
	secret   []byte
	parser   *jwt.Parser
	profiles ProfileSaver
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

// Claims is the token payload issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type ProfileSaver interface {
	UpsertProfile(ctx context.Context, userID, email, avatarURL string) error
}

func NewJWTAuth(cfg config.AuthConfig, profiles ProfileSaver, log logger.Logger) *JWTAuth {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	if audience := strings.TrimSpace(cfg.Audience); audience != "" {
		options = append(options, jwt.WithAudience(audience))
	}

	return &JWTAuth{
		secret:   []byte(cfg.JWTSecret),
		parser:   jwt.NewParser(options...),
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
			Name:  strings.TrimSpace(cfg.MockUserName),
		},
		log: log,
	}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			a.serveUser(w, r, next, user)
			return
		}

		if len(a.secret) == 0 {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.Authenticate(token)
		if err != nil {
			logger.FromContext(r.Context(), a.log).Debug("auth: token rejected", "error", err)
			unauthorized(w)
			return
		}
		a.serveUser(w, r, next, user)
	})
}

// Authenticate verifies a raw bearer token and returns its user.
func (a *JWTAuth) Authenticate(raw string) (User, error) {
	var claims Claims
	_, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return User{}, err
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return User{}, errors.New("token has no subject")
	}

	return User{
		ID:        subject,
		Email:     claims.Email,
		Name:      firstNonEmpty(stringFromMap(claims.UserMetadata, "name"), stringFromMap(claims.UserMetadata, "full_name")),
		AvatarURL: stringFromMap(claims.UserMetadata, "avatar_url"),
	}, nil
}

func (a *JWTAuth) serveUser(w http.ResponseWriter, r *http.Request, next http.Handler, user User) {
	ctx := r.Context()
	if a.profiles != nil {
		if err := a.profiles.UpsertProfile(ctx, user.ID, user.Email, user.AvatarURL); err != nil {
			logger.FromContext(ctx, a.log).InternalError("auth: upsert profile failed", err, "user_id", user.ID)
		}
	}

	ctx = WithUser(ctx, user)
	ctx = logger.WithContext(ctx, logger.FromContext(ctx, a.log).With("user_id", user.ID))
	next.ServeHTTP(w, r.WithContext(ctx))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func stringFromMap(values map[string]any, key string) string {
	if values == nil {
		return ""
	}
	parsed, _ := values[key].(string)
	return parsed
}
