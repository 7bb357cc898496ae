package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"libraryapi/internal/api/response"
)

const claimsKey = "auth_claims"

// Claims is the token payload attached to authenticated requests.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Rule allows a set of roles to call routes matching a method and path
// pattern. The table is fixed at startup and scanned in order: the first
// rule whose method and pattern both match is authoritative.
type Rule struct {
	Method string
	Path   *regexp.Regexp
	Roles  []string
}

// DefaultRules is the route permission table: members may read books,
// librarians may also write them.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodGet, Path: regexp.MustCompile(`^/books$`), Roles: []string{"member", "librarian"}},
		{Method: http.MethodGet, Path: regexp.MustCompile(`^/books/\d+$`), Roles: []string{"member", "librarian"}},
		{Method: http.MethodPost, Path: regexp.MustCompile(`^/books$`), Roles: []string{"librarian"}},
		{Method: http.MethodPut, Path: regexp.MustCompile(`^/books/\d+$`), Roles: []string{"librarian"}},
		{Method: http.MethodPut, Path: regexp.MustCompile(`^/books/\d+/availability$`), Roles: []string{"librarian"}},
		{Method: http.MethodDelete, Path: regexp.MustCompile(`^/books/\d+$`), Roles: []string{"librarian"}},
	}
}

// VerifyJWT authenticates the bearer token and authorizes the request
// against the rule table. A missing or malformed header is rejected before
// the token is even parsed; an unverifiable token or a role outside the
// matching rule's set is forbidden. No matching rule means no access.
func VerifyJWT(secret []byte, rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Message(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{"HS256"}),
		)
		if err != nil || !token.Valid {
			response.Message(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		if !allowed(rules, c.Request.Method, c.Request.URL.Path, claims.Role) {
			response.Message(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func allowed(rules []Rule, method, path, role string) bool {
	for _, rule := range rules {
		if rule.Method != method || !rule.Path.MatchString(path) {
			continue
		}
		for _, r := range rule.Roles {
			if r == role {
				return true
			}
		}
		return false
	}
	return false
}

// TokenClaims returns the claims attached by VerifyJWT, if any.
func TokenClaims(c *gin.Context) *Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*Claims)
	return claims
}
