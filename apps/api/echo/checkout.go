package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/checkout"
)

type checkoutApi struct {
	svc        *checkout.Service
	accountSvc *account.Service
	validate   *validator.Validate
}

func registerCheckoutAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *checkout.Service, accountSvc *account.Service, validate *validator.Validate) {
	api := checkoutApi{svc: svc, accountSvc: accountSvc, validate: validate}

	cg := g.Group("/checkout", jwt)
	cg.POST("", api.begin)
	cg.GET("", api.current)
	cg.DELETE("", api.cancel)
	cg.GET("/methods", api.queryMethods)
	cg.GET("/quotes", api.queryQuotes)

	pg := g.Group("/payments", jwt)
	pg.POST("", api.startPayment)
	pg.GET("/:id", api.retrievePayment)
	pg.POST("/:id/confirm", api.confirmPayment)
	pg.POST("/:id/retry", api.retryPayment)
	pg.DELETE("/:id", api.cancelPayment)
}

// Handlers

func (api *checkoutApi) begin(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data checkout.BeginCheckout
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BeginCheckout")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	co, err := api.svc.Begin(claims.Subject, data)
	if err != nil {
		switch errors.Cause(err) {
		case checkout.ErrItemNotInCart:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return errors.Wrap(err, "beginning checkout")
	}
	return ctx.JSON(http.StatusCreated, co)
}

func (api *checkoutApi) current(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	co, err := api.svc.Current(claims.Subject)
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, co)
}

func (api *checkoutApi) cancel(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	api.svc.Cancel(claims.Subject)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *checkoutApi) queryMethods(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, checkout.Methods)
}

// queryQuotes computes the per-method fee breakdown for the checkout in
// progress.
func (api *checkoutApi) queryQuotes(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	co, err := api.svc.Current(claims.Subject)
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, checkout.Quotes(co.AmountAfterCredit))
}

func (api *checkoutApi) startPayment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data StartPaymentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StartPaymentRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	session, err := api.svc.StartPayment(claims.Subject, data.Method)
	if err != nil {
		if errors.Cause(err) == checkout.ErrNoCheckout {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, session.Snapshot())
}

func (api *checkoutApi) retrievePayment(ctx echo.Context) error {
	session, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, session.Snapshot())
}

func (api *checkoutApi) confirmPayment(ctx echo.Context) error {
	session, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	if err := session.Confirm(); err != nil {
		return errHttpConflict
	}
	return ctx.JSON(http.StatusOK, session.Snapshot())
}

func (api *checkoutApi) retryPayment(ctx echo.Context) error {
	session, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	if err := session.Retry(); err != nil {
		return errHttpConflict
	}
	return ctx.JSON(http.StatusOK, session.Snapshot())
}

func (api *checkoutApi) cancelPayment(ctx echo.Context) error {
	session, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	if err := session.Cancel(); err != nil {
		return errHttpConflict
	}
	return ctx.JSON(http.StatusOK, session.Snapshot())
}

func (api *checkoutApi) getSession(ctx echo.Context) (*checkout.PaymentSession, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil, err
	}

	session, err := api.svc.GetSession(claims.Subject, ctx.Param("id"))
	if err != nil {
		return nil, errHttpNotFound
	}
	return session, nil
}

type StartPaymentRequest struct {
	Method string `json:"method" validate:"required"`
}
