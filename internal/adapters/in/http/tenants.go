package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/order"
)

// ListOrdersByState handles GET /api/v1/tenants/{tenantId}/orders?state=.
func (s *Server) ListOrdersByState(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	tenantID, err := pathUUID(c, "tenantId")
	if err != nil {
		return s.fail(c, err)
	}
	if err = requireTenant(who, tenantID); err != nil {
		return s.fail(c, err)
	}

	rawState, err := queryString(c, "state", true)
	if err != nil {
		return s.fail(c, err)
	}
	state, err := order.ParseState(rawState)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListOrdersByStateQuery(tenantID, state)
	if err != nil {
		return s.fail(c, err)
	}

	summaries, err := s.handlers.ListOrdersByState.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]orderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = toOrderSummaryResponse(summary)
	}
	return c.JSON(http.StatusOK, response)
}

// TenantPendingPayments handles GET /api/v1/tenants/{tenantId}/pending-payments.
func (s *Server) TenantPendingPayments(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	tenantID, err := pathUUID(c, "tenantId")
	if err != nil {
		return s.fail(c, err)
	}
	if err = requireTenant(who, tenantID); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewPendingPaymentsReportQuery(tenantID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.pendingPayments(c, query)
}

// PlatformPendingPayments handles GET /api/v1/pending-payments.
func (s *Server) PlatformPendingPayments(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	if err = requireRole(who, actor.SuperAdmin); err != nil {
		return s.fail(c, err)
	}
	return s.pendingPayments(c, queries.NewPlatformPendingPaymentsReportQuery())
}

func (s *Server) pendingPayments(c echo.Context, query queries.PendingPaymentsReportQuery) error {
	report, err := s.handlers.PendingPaymentsReport.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPendingPaymentsReportResponse(report))
}

// LiveFeed handles GET /api/v1/tenants/{tenantId}/live. Browsers cannot set
// headers on a WebSocket handshake, so the token may come as ?token=.
func (s *Server) LiveFeed(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	tenantID, err := pathUUID(c, "tenantId")
	if err != nil {
		return s.fail(c, err)
	}
	if err = requireTenant(who, tenantID); err != nil {
		return s.fail(c, err)
	}

	// The upgrader has already answered the client when Serve fails.
	if err = s.live.Serve(c.Response(), c.Request(), tenantID); err != nil {
		s.logger.WarnContext(c.Request().Context(), "live feed upgrade failed",
			"tenant", tenantID.String(), "error", err)
	}
	return nil
}
