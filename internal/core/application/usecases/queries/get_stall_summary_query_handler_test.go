package queries_test

import (
	"context"

	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetStallSummary_ReturnsTotals() {
	suite.seedStall("S1", 25, 13)
	suite.seedStall("S2", 4, 0)

	handler := queries.NewGetStallSummaryQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallSummaryQuery("Maxwell", "S1")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(25, result.EstimatedWaitTime)
	suite.Equal("13.00", result.TotalEarned.String())
	suite.True(result.Stall.IsEqual(suite.ref("S1")))
}

func (suite *QueryHandlersTestSuite) TestGetStallSummary_UnknownStall() {
	suite.seedStall("S1", 1, 1)

	handler := queries.NewGetStallSummaryQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallSummaryQuery("Lau Pa Sat", "S1")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetStallSummary_ContextCancelled() {
	suite.seedStall("S1", 1, 1)

	handler := queries.NewGetStallSummaryQueryHandler(suite.database.DB)
	query, err := queries.NewGetStallSummaryQuery("Maxwell", "S1")
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = handler.Handle(ctx, query)

	suite.Require().Error(err)
}
