// Package auth contains the HTTP handlers for account registration and
// login. Both answer with the account and a fresh bearer token.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	authn "github.com/aanand-mishra/student-registry/internal/auth"
	"github.com/aanand-mishra/student-registry/internal/service"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/request"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

type Service interface {
	Register(ctx context.Context, req types.RegisterRequest) (types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (types.AuthResponse, error)
}

// Register handles POST /api/auth/register
//
//	201 Created      : { id, name, email, token }
//	400 Bad Request  : malformed body or failed validation
//	409 Conflict     : email already registered
func Register(svc Service, validate *validator.Validate, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		resp, err := svc.Register(r.Context(), req)
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
		case errors.Is(err, authn.ErrPasswordTooLong):
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		case err != nil:
			internalError(w, r, log, err)
		default:
			response.WriteJSON(w, http.StatusCreated, resp)
		}
	}
}

// Login handles POST /api/auth/login
//
//	200 OK            : { id, name, email, token }
//	400 Bad Request   : malformed body or missing fields
//	401 Unauthorized  : unknown email or wrong password
func Login(svc Service, validate *validator.Validate, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		resp, err := svc.Login(r.Context(), req)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.WarnContext(r.Context(), "failed login attempt")
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(err))
		case err != nil:
			internalError(w, r, log, err)
		default:
			response.WriteJSON(w, http.StatusOK, resp)
		}
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := request.DecodeJSON(w, r, dst); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	if err := validate.StructCtx(r.Context(), dst); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return false
	}
	return true
}

func internalError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.ErrorContext(r.Context(), "auth request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.GeneralError(errors.New("an unexpected error occurred")))
}
