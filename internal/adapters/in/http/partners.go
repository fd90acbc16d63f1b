package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// RegisterPartner handles POST /api/v1/partners.
func (s *Server) RegisterPartner(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	if err = requireRole(who, actor.SuperAdmin); err != nil {
		return s.fail(c, err)
	}

	var req newPartnerRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRegisterPartnerCommand(req.Name)
	if err != nil {
		return s.fail(c, err)
	}

	registered, err := s.handlers.RegisterPartner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toPartnerResponse(registered))
}

// RecordBonus handles POST /api/v1/partners/{partnerId}/bonuses.
func (s *Server) RecordBonus(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	if err = requireRole(who, actor.SuperAdmin); err != nil {
		return s.fail(c, err)
	}
	partnerID, err := pathUUID(c, "partnerId")
	if err != nil {
		return s.fail(c, err)
	}

	var req newBonusRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordBonusCommand(partnerID, amount, req.Reason, req.OccurredAt)
	if err != nil {
		return s.fail(c, err)
	}

	bonus, err := s.handlers.RecordBonus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toBonusResponse(bonus))
}

// ListOrdersByPartner handles GET /api/v1/partners/{partnerId}/orders?from=&to=.
func (s *Server) ListOrdersByPartner(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	partnerID, err := pathUUID(c, "partnerId")
	if err != nil {
		return s.fail(c, err)
	}
	if err = requirePartner(who, partnerID); err != nil {
		return s.fail(c, err)
	}
	window, err := queryWindow(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListOrdersByPartnerQuery(partnerID, window)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.handlers.ListOrdersByPartner.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]orderResponse, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}
	return c.JSON(http.StatusOK, response)
}

// EarningsSummary handles GET /api/v1/partners/{partnerId}/earnings.
// Without ?granularity= only the totals are returned.
func (s *Server) EarningsSummary(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	partnerID, err := pathUUID(c, "partnerId")
	if err != nil {
		return s.fail(c, err)
	}
	if err = requirePartner(who, partnerID); err != nil {
		return s.fail(c, err)
	}
	window, err := queryWindow(c)
	if err != nil {
		return s.fail(c, err)
	}

	rawGranularity, err := queryString(c, "granularity", false)
	if err != nil {
		return s.fail(c, err)
	}
	granularity := services.GranularityUnknown
	if rawGranularity != "" {
		if granularity, err = services.ParseGranularity(rawGranularity); err != nil {
			return s.fail(c, err)
		}
	}

	query, err := queries.NewEarningsSummaryQuery(partnerID, window, granularity)
	if err != nil {
		return s.fail(c, err)
	}

	summary, err := s.handlers.EarningsSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toEarningsSummaryResponse(summary))
}
