package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/user"
)

var errBadInternalSecret = echo.NewHTTPError(http.StatusUnauthorized, "invalid api secret")

// authApi exchanges an authenticated frontend session for an API token.
// The session provider itself lives outside this service, so the exchange is
// guarded by the shared application secret.
type authApi struct {
	conf *core.Config
	svc  *user.Service
}

func registerAuthAPI(g *echo.Group, conf *core.Config, svc *user.Service) {
	api := authApi{conf: conf, svc: svc}

	ag := g.Group("/auth")
	ag.POST("/token", api.token)
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (r *tokenRequest) Validate() error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.Name = core.CleanString(r.Name)
	return core.Validate.Struct(r)
}

// token finds or creates the user for the verified email and returns a signed
// JWT. New users start out as students.
func (api *authApi) token(ctx echo.Context) error {
	if ctx.Request().Header.Get("X-Api-Secret") != api.conf.SecretKey {
		return errBadInternalSecret
	}

	var data tokenRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to tokenRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	usr, err := api.svc.GetByEmail(rctx, data.Email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return errors.Wrap(err, "finding user by email")
		}
		usr, err = api.svc.Create(rctx, user.NewUser{Email: data.Email, Name: data.Name, Image: data.Image})
		if err != nil {
			return errors.Wrap(err, "creating user")
		}
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, tokenResponse{Token: token})
}
