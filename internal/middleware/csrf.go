package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Имена cookie, поля формы и заголовка для CSRF токена
const (
	CSRFCookieName = "csrf_token"
	CSRFFieldName  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

const (
	csrfContextKey = "csrf_token"
	csrfNonceSize  = 32
	csrfMaxAge     = 12 * 60 * 60
)

// CSRF защищает формы токеном double-submit cookie, подписанным секретом приложения
type CSRF struct {
	secret  []byte
	enabled bool
	logger  *zap.Logger
}

// NewCSRF создает защиту форм
func NewCSRF(secret string, enabled bool, logger *zap.Logger) *CSRF {
	return &CSRF{
		secret:  []byte(secret),
		enabled: enabled,
		logger:  logger,
	}
}

// Issue выдает токен для страниц с формами
func (x *CSRF) Issue() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !x.enabled {
			c.Next()
			return
		}

		token, err := c.Cookie(CSRFCookieName)
		if err != nil || !x.valid(token) {
			token, err = x.newToken()
			if err != nil {
				x.logger.Error("Failed to generate CSRF token", zap.Error(err))
				abortWithError(c, http.StatusInternalServerError, "Something went wrong on our side.")
				return
			}
			x.setCookie(c, token)
		}

		c.Set(csrfContextKey, token)
		c.Next()
	}
}

// Protect отклоняет запросы без корректного токена
func (x *CSRF) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !x.enabled {
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookieName)
		submitted := c.GetHeader(CSRFHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFFieldName)
		}

		if err != nil || !x.valid(cookie) || !hmac.Equal([]byte(cookie), []byte(submitted)) {
			x.logger.Warn("CSRF validation failed",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Bool("has_cookie", err == nil),
				zap.Bool("has_token", submitted != ""))
			abortWithError(c, http.StatusBadRequest, "The CSRF token is missing or invalid.")
			return
		}

		c.Set(csrfContextKey, cookie)
		c.Next()
	}
}

// CSRFToken возвращает токен текущего запроса для шаблонов
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func (x *CSRF) newToken() (string, error) {
	nonce := make([]byte, csrfNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to read random nonce: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(nonce)
	return encoded + "." + x.sign(encoded), nil
}

func (x *CSRF) valid(token string) bool {
	nonce, signature, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(x.sign(nonce)))
}

func (x *CSRF) sign(nonce string) string {
	mac := hmac.New(sha256.New, x.secret)
	mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (x *CSRF) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFCookieName, token, csrfMaxAge, "/", "", c.Request.TLS != nil, true)
}
