package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Identity headers set by the authenticating reverse proxy.  The engine
// trusts them; authentication itself happens upstream.
const (
	HeaderAccountID    = "X-Account-ID"
	HeaderAccountKind  = "X-Account-Kind"
	HeaderAdminRole    = "X-Admin-Role"
	HeaderDepartmentID = "X-Department-ID"
)

const actorKey = "actor"

// Actor builds the request actor from the identity headers.  Requests with a
// missing or malformed identity are rejected with 401.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeaders(c)
		if err != nil {
			c.AbortWithStatusJSON(errors.HTTPStatusForCode(errors.ErrCodeUnauthorized), gin.H{
				"code":    errors.ErrCodeUnauthorized,
				"message": err.Error(),
			})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAdmin rejects non-administrative actors with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ContextActor(c).IsAdmin() {
			c.AbortWithStatusJSON(errors.HTTPStatusForCode(errors.ErrCodeForbidden), gin.H{
				"code":    errors.ErrCodeForbidden,
				"message": "administrative access required",
			})
			return
		}
		c.Next()
	}
}

// ContextActor returns the actor attached by Actor.
func ContextActor(c *gin.Context) account.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(account.Actor); ok {
			return actor
		}
	}
	return account.Actor{}
}

func actorFromHeaders(c *gin.Context) (account.Actor, error) {
	rawID := c.GetHeader(HeaderAccountID)
	if rawID == "" {
		return account.Actor{}, errors.New(errors.ErrCodeUnauthorized, "missing identity")
	}
	accountID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || accountID < 1 {
		return account.Actor{}, errors.New(errors.ErrCodeUnauthorized, "malformed account id")
	}

	actor := account.Actor{AccountID: accountID}
	switch kind := account.Kind(c.GetHeader(HeaderAccountKind)); kind {
	case account.KindEndUser:
		actor.Kind = account.KindEndUser
	case account.KindAdmin:
		actor.Kind = account.KindAdmin
		switch role := account.AdminRole(c.GetHeader(HeaderAdminRole)); role {
		case account.RoleDepartmentHead:
			actor.Role = role
			deptID, err := strconv.ParseInt(c.GetHeader(HeaderDepartmentID), 10, 64)
			if err != nil || deptID < 1 {
				return account.Actor{}, errors.New(errors.ErrCodeUnauthorized, "department head identity requires a department")
			}
			actor.DepartmentID = deptID
		case account.RoleTechnicalSecretary:
			actor.Role = role
		default:
			return account.Actor{}, errors.New(errors.ErrCodeUnauthorized, "unknown admin role")
		}
	default:
		return account.Actor{}, errors.New(errors.ErrCodeUnauthorized, "unknown account kind")
	}
	return actor, nil
}
