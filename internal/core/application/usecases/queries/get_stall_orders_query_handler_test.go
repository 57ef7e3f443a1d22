package queries_test

import (
	"context"
	"time"

	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetStallOrders_GroupsDishesByOrder() {
	suite.seedStall("S1", 0, 0)
	suite.seedStall("S2", 0, 0)
	later := suite.now.Add(time.Minute)

	suite.seedSubOrder("S1", "O2", later, dishSeed{"Laksa", 1, 8, 6})
	suite.seedSubOrder("S1", "O1", suite.now,
		dishSeed{"D1", 2, 5, 3},
		dishSeed{"D2", 1, 10, 7},
	)
	suite.seedSubOrder("S2", "O1", suite.now, dishSeed{"Satay", 10, 1, 1})

	ref := suite.ref("S1")
	orderID, err := kernel.NewOrderID("O1")
	suite.Require().NoError(err)
	_, err = suite.subOrderRepo.CompleteLine(context.Background(), ref, orderID, "D1", later)
	suite.Require().NoError(err)

	handler := queries.NewGetStallOrdersQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallOrdersQuery("Maxwell", "S1")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	first := result[0]
	suite.Equal("O1", first.OrderID)
	suite.Equal("u-O1", first.UserID)
	suite.Require().Len(first.Dishes, 2)
	suite.Equal("D1", first.Dishes[0].Name)
	suite.True(first.Dishes[0].Completed)
	suite.Require().NotNil(first.Dishes[0].TimeCompleted)
	suite.True(first.Dishes[0].TimeCompleted.Equal(later))
	suite.Equal("D2", first.Dishes[1].Name)
	suite.False(first.Dishes[1].Completed)
	suite.Nil(first.Dishes[1].TimeCompleted)
	suite.Equal("7.00", first.Dishes[1].Price.String())

	suite.Equal("O2", result[1].OrderID)
	suite.Len(result[1].Dishes, 1)
}

func (suite *QueryHandlersTestSuite) TestGetStallOrders_KnownStallWithoutOrders() {
	suite.seedStall("S1", 0, 0)

	handler := queries.NewGetStallOrdersQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallOrdersQuery("Maxwell", "S1")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestGetStallOrders_UnknownStall() {
	handler := queries.NewGetStallOrdersQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallOrdersQuery("Maxwell", "Nobody")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}
