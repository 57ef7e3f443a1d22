package queries_test

import (
	"context"

	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetOrderStatus_ReflectsPaymentOutcome() {
	suite.seedOrder("pending-1", nil)
	suite.seedOrder("paid-1", (*order.Order).MarkPaid)
	suite.seedOrder("failed-1", (*order.Order).MarkPaymentFailed)

	handler := queries.NewGetOrderStatusQueryHandler(suite.database.DB)
	expected := map[string]order.PaymentStatus{
		"pending-1": order.Pending,
		"paid-1":    order.Success,
		"failed-1":  order.Failed,
	}

	for id, status := range expected {
		query, err := queries.NewGetOrderStatusQuery(id)
		suite.Require().NoError(err)

		result, err := handler.Handle(context.Background(), query)

		suite.Require().NoError(err)
		suite.Equal(id, result.OrderID.String())
		suite.Equal(status, result.Status, "order %s", id)
	}
}

func (suite *QueryHandlersTestSuite) TestGetOrderStatus_UnknownOrder() {
	handler := queries.NewGetOrderStatusQueryHandler(suite.database.DB)
	query, err := queries.NewGetOrderStatusQuery("missing")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetOrderStatus_InvalidQuery() {
	handler := queries.NewGetOrderStatusQueryHandler(suite.database.DB)

	_, err := handler.Handle(context.Background(), queries.GetOrderStatusQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderStatusQueryIsNotConstructed)
}
