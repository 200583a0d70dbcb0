package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetClientIP extracts the originating client address, preferring proxy
// headers over the socket peer.
func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); len(xff) > 0 {
		if comma := strings.IndexByte(xff, ','); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}
	if xri := c.Get("X-Real-IP"); len(xri) > 0 {
		return strings.TrimSpace(xri)
	}
	ip := c.IP()
	if i := strings.LastIndexByte(ip, ':'); i != -1 {
		return ip[:i]
	}
	return ip
}

// SanitizeInput escapes HTML-significant characters in a single pass.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateEmail checks format and length constraints without regex.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if len(email) > 254 {
		return errors.New("email too long")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return errors.New("email must contain a local part and a domain")
	}
	if strings.IndexByte(email, '@') != strings.LastIndexByte(email, '@') {
		return errors.New("email must contain exactly one @")
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return errors.New("email domain is malformed")
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return errors.New("email must not contain whitespace")
	}
	return nil
}

// GetCookie builds the session cookie with security settings derived from
// the environment.
func GetCookie(enableHTTPS bool, env, key, val string, maxAges ...int) *fiber.Cookie {
	maxAge := 300
	if len(maxAges) > 0 {
		maxAge = maxAges[0]
	}
	secure := enableHTTPS || env == "production"
	return &fiber.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		MaxAge:   maxAge,
	}
}

// ExpiredCookie clears key on the client.
func ExpiredCookie(key string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Unix(0, 0),
	}
}
