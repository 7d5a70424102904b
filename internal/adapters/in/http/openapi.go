package http

import (
	"fmt"
	"strings"

	"rental/api"
	"rental/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// NewOpenAPIValidator builds echo middleware that checks incoming requests
// against the embedded api/openapi.yml contract before they reach the
// handlers. Requests for paths outside the contract pass through untouched.
func NewOpenAPIValidator() (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(api.OpenAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				// Path not covered by the contract; echo decides what to do
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				detail := strings.Join(strings.Fields(err.Error()), " ")
				return toolFailure(ctx, errs.NewValidationError("request does not match the API contract: "+detail))
			}

			return next(ctx)
		}
	}, nil
}
