package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"fix-manufacture-api/internal/metrics"
	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/service"
	"fix-manufacture-api/internal/token"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const subjectKey = "subject"

// Check is one step of an access guard. A non-nil error rejects the request.
type Check func(c echo.Context) error

// Chain runs the checks in order and calls the handler only if all of them pass.
func Chain(checks ...Check) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, check := range checks {
				if err := check(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

// SubjectFromContext returns the email an Authenticated check stored.
func SubjectFromContext(c echo.Context) (string, bool) {
	subject, ok := c.Get(subjectKey).(string)
	return subject, ok && subject != ""
}

type Guard struct {
	tokens  token.Service
	roles   service.RoleResolver
	metrics metrics.Recorder
	log     *zap.Logger
}

func NewGuard(tokens token.Service, roles service.RoleResolver, recorder metrics.Recorder, log *zap.Logger) *Guard {
	return &Guard{
		tokens:  tokens,
		roles:   roles,
		metrics: recorder,
		log:     log,
	}
}

func (g *Guard) reject(c echo.Context, status int, reason string) error {
	g.metrics.RecordGuardRejection(reason)
	g.log.Debug("request rejected by guard",
		zap.String("reason", reason),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
	)
	return echo.NewHTTPError(status, http.StatusText(status))
}

// Authenticated reads "Authorization: Bearer <token>". No header at all is a
// 401; a header whose token is missing or does not verify is a 403.
func (g *Guard) Authenticated() Check {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return g.reject(c, http.StatusUnauthorized, "missing_credential")
		}

		fields := strings.Fields(header)
		if len(fields) < 2 {
			return g.reject(c, http.StatusForbidden, "malformed_credential")
		}

		subject, err := g.tokens.Verify(fields[1])
		if err != nil {
			return g.reject(c, http.StatusForbidden, "invalid_credential")
		}

		c.Set(subjectKey, subject)
		return nil
	}
}

// OwnerOrSelf requires the subject to equal the email carried in the named
// query parameter, or path parameter when the query has none.
func (g *Guard) OwnerOrSelf(param string) Check {
	return func(c echo.Context) error {
		subject, ok := SubjectFromContext(c)
		if !ok {
			return g.reject(c, http.StatusForbidden, "no_subject")
		}

		target := c.QueryParam(param)
		if target == "" {
			target = c.Param(param)
		}
		if target != subject {
			return g.reject(c, http.StatusForbidden, "not_owner")
		}
		return nil
	}
}

// Admin requires a subject whose stored role is admin. Unknown users are not admins.
func (g *Guard) Admin() Check {
	return func(c echo.Context) error {
		subject, ok := SubjectFromContext(c)
		if !ok {
			return g.reject(c, http.StatusForbidden, "no_subject")
		}

		role, err := g.roles.RoleOf(c.Request().Context(), subject)
		if err != nil {
			return fmt.Errorf("resolve role: %w", err)
		}
		if role != model.RoleAdmin {
			return g.reject(c, http.StatusForbidden, "not_admin")
		}
		return nil
	}
}
