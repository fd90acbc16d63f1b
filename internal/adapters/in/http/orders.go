package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// CommitOrder handles POST /api/v1/orders. The cart belongs to the caller,
// who must be a customer.
func (s *Server) CommitOrder(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	if err = requireRole(who, actor.Customer); err != nil {
		return s.fail(c, err)
	}

	var req commitOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	basket, err := s.buildCart(who, req)
	if err != nil {
		return s.fail(c, err)
	}
	mode, err := order.ParseMode(req.Mode)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCommitOrderCommand(basket, mode, req.TableRef)
	if err != nil {
		return s.fail(c, err)
	}

	placed, err := s.handlers.CommitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusCreated, who, placed)
}

func (s *Server) buildCart(who actor.Actor, req commitOrderRequest) (*cart.Cart, error) {
	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("tenantId", err)
	}

	basket, err := cart.NewCart(who.ID(), tenantID)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		price, priceErr := kernel.NewMoney(line.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := cart.NewLineItem(line.SkuID, line.Name, price, line.Quantity, line.Customizations)
		if itemErr != nil {
			return nil, itemErr
		}
		if putErr := basket.Put(item); putErr != nil {
			return nil, putErr
		}
	}

	if req.Discount > 0 {
		discount, discountErr := kernel.NewMoney(req.Discount)
		if discountErr != nil {
			return nil, discountErr
		}
		if err = basket.ApplyDiscount(discount); err != nil {
			return nil, err
		}
	}

	return basket, nil
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, who)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(view))
}

// AllowedTransitions handles GET /api/v1/orders/{orderId}/transitions.
func (s *Server) AllowedTransitions(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewAllowedTransitionsQuery(orderID, who)
	if err != nil {
		return s.fail(c, err)
	}

	allowed, err := s.handlers.AllowedTransitions.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, allowedTransitionsResponse{
		OrderID: allowed.OrderID.String(),
		State:   allowed.State.String(),
		Version: allowed.Version,
		Next:    stateNames(allowed.Next),
	})
}

// RequestTransition handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) RequestTransition(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req transitionRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	to, err := order.ParseState(req.To)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRequestTransitionCommand(orderID, req.Version, to, who)
	if err != nil {
		return s.fail(c, err)
	}
	if req.Retry {
		cmd = cmd.WithSilentRetry()
	}

	moved, err := s.handlers.RequestTransition.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, who, moved)
}

// RecordPayment handles POST /api/v1/orders/{orderId}/payments. Gateway
// callbacks are relayed by staff of the tenant or by the platform.
func (s *Server) RecordPayment(c echo.Context) error {
	who, orderID, err := s.staffOnOrder(c)
	if err != nil {
		return s.failOrPass(c, err)
	}

	var req paymentRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	outcome, err := order.ParsePaymentStatus(req.Outcome)
	if err != nil {
		return s.fail(c, err)
	}
	method := payment.MethodUnknown
	if outcome == order.PaymentPaid {
		if method, err = payment.ParseMethod(req.Method); err != nil {
			return s.fail(c, err)
		}
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, outcome, method, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.RecordPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, who, updated)
}

// RequestRefund handles POST /api/v1/orders/{orderId}/refunds.
func (s *Server) RequestRefund(c echo.Context) error {
	who, orderID, err := s.staffOnOrder(c)
	if err != nil {
		return s.failOrPass(c, err)
	}

	var req refundRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRequestRefundCommand(orderID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	refunded, err := s.handlers.RequestRefund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, who, refunded)
}

// AssignPartner handles POST /api/v1/orders/{orderId}/assignment.
func (s *Server) AssignPartner(c echo.Context) error {
	who, err := currentActor(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req assignmentRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("partnerId", err))
	}
	pickup, err := kernel.NewLocation(kernel.Coordinate(req.Pickup.X), kernel.Coordinate(req.Pickup.Y))
	if err != nil {
		return s.fail(c, err)
	}
	dropoff, err := kernel.NewLocation(kernel.Coordinate(req.Dropoff.X), kernel.Coordinate(req.Dropoff.Y))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID, req.Version, partnerID, pickup, dropoff, who)
	if err != nil {
		return s.fail(c, err)
	}

	assigned, err := s.handlers.AssignPartner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, who, assigned)
}

// staffOnOrder admits staff that can see the order. A kitchen of another
// tenant gets the same not-found answer as for a missing order.
func (s *Server) staffOnOrder(c echo.Context) (actor.Actor, kernel.UUID, error) {
	who, err := currentActor(c)
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}
	if err = requireRole(who, actor.KitchenStaff, actor.SuperAdmin); err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}

	query, err := queries.NewGetOrderQuery(orderID, who)
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}
	if _, err = s.handlers.GetOrder.Handle(c.Request().Context(), query); err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}

	return who, orderID, nil
}

// failOrPass lets echo errors (401) reach the echo error handler.
func (s *Server) failOrPass(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}
	return s.fail(c, err)
}

func (s *Server) respondOrder(c echo.Context, status int, who actor.Actor, o *order.Order) error {
	view, err := queries.NewOrderView(o, s.gateway.AllowedNext(who, o))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, toOrderResponse(view))
}
