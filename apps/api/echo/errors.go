package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// statusForDomainErr maps known service sentinels to HTTP status codes.
// Unknown errors fall through to 0.
func statusForDomainErr(err error) int {
	switch err {
	case user.ErrNotFound, event.ErrNotFound, event.ErrRegistrationNotFound,
		event.ErrTeamNotFound, roadmap.ErrNotFound, roadmap.ErrCheckpointNotFound,
		club.ErrMentorNotFound, club.ErrNoHeaderPhoto, setting.ErrNotFound:
		return http.StatusNotFound
	case user.ErrPermissionDenied:
		return http.StatusForbidden
	case user.ErrLastAdmin, user.ErrSelfDeletion, user.ErrEmailExists,
		event.ErrAlreadyRegistered, event.ErrEmptyRoster, event.ErrNoEmailColumn:
		return http.StatusBadRequest
	}
	return 0
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if status := statusForDomainErr(errors.Cause(err)); status != 0 {
			code = status
			message = errors.Cause(err).Error()
		} else {
			switch origErr := errors.Cause(err).(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
				}
				code = http.StatusBadRequest
				message = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					message = fldErrs
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var usr user.User
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					usr.ID = claims.Subject
					usr.Name = claims.Name
					usr.Email = claims.Email
				}
				logger.Error(msg, errors.Wrap(err, msg), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
