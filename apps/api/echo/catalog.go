package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/catalog"
)

type catalogApi struct {
	svc        *catalog.Service
	accountSvc *account.Service
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *catalog.Service, accountSvc *account.Service) {
	api := catalogApi{svc: svc, accountSvc: accountSvc}

	cg := g.Group("/catalog", jwt)
	cg.GET("/students", api.queryStudents)
	cg.GET("/invoices", api.queryInvoices)
	cg.GET("/invoice-groups", api.queryInvoiceGroups)
	cg.GET("/credit-notes", api.queryCreditNotes)
	cg.GET("/trips", api.queryTrips)

	rg := g.Group("/receipts", jwt)
	rg.GET("", api.queryReceipts)
	rg.GET("/:id", api.retrieveReceipt)
}

// Handlers

// queryStudents lists the logged-in parent's children only.
func (api *catalogApi) queryStudents(ctx echo.Context) error {
	prt, err := getContextParent(ctx, api.accountSvc)
	if err != nil {
		return err
	}

	students := make([]catalog.Student, 0, len(prt.StudentIDs))
	for _, sid := range prt.StudentIDs {
		student, err := api.svc.GetStudent(sid)
		if err != nil {
			if errors.Cause(err) == catalog.ErrStudentNotFound {
				continue
			}
			return errors.Wrap(err, "finding student by ID")
		}
		students = append(students, student)
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *catalogApi) queryInvoices(ctx echo.Context) error {
	prt, err := getContextParent(ctx, api.accountSvc)
	if err != nil {
		return err
	}

	filter := catalog.InvoiceFilter{
		Type:       ctx.QueryParam("type"),
		Status:     ctx.QueryParam("status"),
		StudentIDs: prt.StudentIDs,
	}
	invoices, err := api.svc.FilterInvoices(filter)
	if err != nil {
		if errors.Cause(err) == catalog.ErrInvalidInvoiceType {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return errors.Wrap(err, "filtering invoices")
	}
	return ctx.JSON(http.StatusOK, invoices)
}

func (api *catalogApi) queryInvoiceGroups(ctx echo.Context) error {
	prt, err := getContextParent(ctx, api.accountSvc)
	if err != nil {
		return err
	}

	groups, err := api.svc.InvoiceGroups(ctx.QueryParam("type"), prt.StudentIDs)
	if err != nil {
		if errors.Cause(err) == catalog.ErrInvalidInvoiceType {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return errors.Wrap(err, "computing invoice groups")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *catalogApi) queryCreditNotes(ctx echo.Context) error {
	prt, err := getContextParent(ctx, api.accountSvc)
	if err != nil {
		return err
	}

	notes, err := api.svc.QueryCreditNotes(prt.StudentIDs...)
	if err != nil {
		return errors.Wrap(err, "querying credit notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *catalogApi) queryTrips(ctx echo.Context) error {
	prt, err := getContextParent(ctx, api.accountSvc)
	if err != nil {
		return err
	}

	trips, err := api.svc.QueryTrips(prt.StudentIDs...)
	if err != nil {
		return errors.Wrap(err, "querying trips")
	}
	return ctx.JSON(http.StatusOK, trips)
}

func (api *catalogApi) queryReceipts(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	receipts, err := api.svc.QueryReceipts(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying receipts")
	}
	return ctx.JSON(http.StatusOK, receipts)
}

func (api *catalogApi) retrieveReceipt(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	rcp, err := api.svc.GetReceipt(ctx.Param("id"))
	if err != nil || rcp.ParentID != claims.Subject {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, rcp)
}
