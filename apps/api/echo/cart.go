package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/psknn17/kingsportal/core"
	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/cart"
)

type cartApi struct {
	svc        *cart.Service
	accountSvc *account.Service
	validate   *validator.Validate
}

func registerCartAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *cart.Service, accountSvc *account.Service, validate *validator.Validate) {
	api := cartApi{svc: svc, accountSvc: accountSvc, validate: validate}

	cg := g.Group("/cart", jwt)
	cg.GET("/items", api.queryItems)
	cg.POST("/items", api.addItem)
	cg.DELETE("/items/:id", api.removeItem)
	cg.GET("/countdown", api.countdown)
	cg.DELETE("/countdown", api.cancelCountdown)

	tg := g.Group("/trip-cart", jwt)
	tg.GET("/items", api.queryTripItems)
	tg.POST("/items", api.addTripItem)
	tg.DELETE("/items/:id", api.removeTripItem)
}

// Handlers

func (api *cartApi) queryItems(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	items, err := api.svc.Items(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying cart items")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *cartApi) addItem(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data AddItemRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddItemRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	added, err := api.svc.Add(claims.Subject, data.Item())
	if err != nil {
		return errors.Wrap(err, "adding to cart")
	}
	return ctx.JSON(http.StatusOK, AddItemResponse{Added: added})
}

func (api *cartApi) removeItem(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	err = api.svc.Remove(claims.Subject, ctx.Param("id"), ctx.QueryParam("student_id"))
	if err != nil {
		if errors.Cause(err) == cart.ErrItemNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing from cart")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *cartApi) countdown(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	seconds, armed := api.svc.Countdown(claims.Subject)
	return ctx.JSON(http.StatusOK, CountdownResponse{SecondsLeft: seconds, Armed: armed})
}

func (api *cartApi) cancelCountdown(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.CancelCountdown(claims.Subject); err != nil {
		return errors.Wrap(err, "cancelling countdown")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *cartApi) queryTripItems(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	items, err := api.svc.TripItems(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying trip cart items")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *cartApi) addTripItem(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data AddTripItemRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddTripItemRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	added, err := api.svc.AddTrip(claims.Subject, data.Item())
	if err != nil {
		return errors.Wrap(err, "adding to trip cart")
	}
	return ctx.JSON(http.StatusOK, AddItemResponse{Added: added})
}

func (api *cartApi) removeTripItem(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	err = api.svc.RemoveTrip(claims.Subject, ctx.Param("id"), ctx.QueryParam("student_id"))
	if err != nil {
		if errors.Cause(err) == cart.ErrItemNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing from trip cart")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	AddItemRequest struct {
		ID          string                 `json:"id" validate:"required"`
		Name        string                 `json:"name" validate:"required"`
		Price       float64                `json:"price" validate:"gte=0"`
		Type        string                 `json:"type" validate:"required"`
		Category    string                 `json:"category"`
		StudentID   string                 `json:"student_id"`
		StudentName string                 `json:"student_name"`
		CampConfig  map[string]interface{} `json:"camp_config"`
	}

	AddTripItemRequest struct {
		ID          string    `json:"id" validate:"required"`
		Name        string    `json:"name" validate:"required"`
		Price       float64   `json:"price" validate:"gte=0"`
		StudentID   string    `json:"student_id" validate:"required"`
		StudentName string    `json:"student_name"`
		Date        time.Time `json:"date"`
		Location    string    `json:"location"`
	}

	AddItemResponse struct {
		Added bool `json:"added"`
	}

	CountdownResponse struct {
		SecondsLeft int  `json:"seconds_left"`
		Armed       bool `json:"armed"`
	}
)

func (r *AddItemRequest) Validate(validate *validator.Validate) error {
	r.ID = core.CleanString(r.ID)
	r.Type = core.CleanString(r.Type, true /* lower */)
	r.Category = core.CleanString(r.Category, true /* lower */)
	return validate.Struct(r)
}

func (r *AddItemRequest) Item() cart.Item {
	return cart.Item{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Type:        r.Type,
		Category:    r.Category,
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		CampConfig:  r.CampConfig,
	}
}

func (r *AddTripItemRequest) Validate(validate *validator.Validate) error {
	r.ID = core.CleanString(r.ID)
	return validate.Struct(r)
}

func (r *AddTripItemRequest) Item() cart.TripItem {
	return cart.TripItem{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		Date:        r.Date,
		Location:    r.Location,
	}
}
