package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidState, services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders an operation outcome. Server errors never expose their
// cause; the service layer has already logged it.
func writeError(c *drift.Context, err error) {
	kind := services.KindOf(err)
	message := services.ErrServer.Message
	var e *services.Error
	if kind != services.KindServer && errors.As(err, &e) {
		message = e.Message
	}
	_ = c.JSON(statusFor(kind), dto.ErrorResponse{Code: string(kind), Message: message})
}

func badRequest(message string) error {
	return &services.Error{Kind: services.KindInvalidInput, Message: message}
}

// Authorizer runs the caller checks an operation starts with, on their own.
type Authorizer interface {
	Authorize(ctx context.Context, roles ...models.Role) error
}

// input decodes the transport shape of a request: its path ids, its JSON and
// the fields a handler cannot default. Content rules such as lengths belong to
// the operation, which checks them on trimmed values.
//
// A malformed request is reported only after the caller checks the operation
// would have run, so a 401 or 403 always outranks a 400. A nil auth reports
// the problem directly.
type input struct {
	c     *drift.Context
	auth  Authorizer
	roles []models.Role
}

func newInput(c *drift.Context, auth Authorizer, roles ...models.Role) *input {
	return &input{c: c, auth: auth, roles: roles}
}

func (in *input) reject(problem error) {
	if in.auth != nil {
		if err := in.auth.Authorize(in.c.Request.Context(), in.roles...); err != nil {
			writeError(in.c, err)
			return
		}
	}
	writeError(in.c, problem)
}

func (in *input) bind(req any) bool {
	if err := in.c.BindJSON(req); err != nil {
		in.reject(badRequest("invalid request body"))
		return false
	}
	return in.check(req)
}

// bindOptional is bind for endpoints whose body may be omitted.
func (in *input) bindOptional(req any) bool {
	if in.c.Request.ContentLength == 0 {
		return in.check(req)
	}
	return in.bind(req)
}

func (in *input) check(req any) bool {
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			in.reject(badRequest(fmt.Sprintf("%s failed the %s rule", ve[0].Field(), ve[0].Tag())))
			return false
		}
		in.reject(badRequest("invalid request body"))
		return false
	}
	return true
}

func (in *input) pathID(name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(in.c.Param(name))
	if err != nil {
		in.reject(badRequest("invalid " + name))
		return uuid.Nil, false
	}
	return id, true
}
