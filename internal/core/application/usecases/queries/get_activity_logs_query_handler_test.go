package queries_test

import (
	"context"
	"time"

	"hawkerflow/internal/adapters/out/postgres/activityrepo"
	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/clock"
)

func (suite *QueryHandlersTestSuite) seedActivity(orderID, stallName, dish string, started, ended time.Time) {
	id, err := kernel.NewOrderID(orderID)
	suite.Require().NoError(err)
	entry, err := activity.NewEntry(id, suite.ref(stallName), dish, 1, started, ended)
	suite.Require().NoError(err)

	added, err := activityrepo.NewGormActivityRepository(suite.database.DB).AddAll(context.Background(), []*activity.Entry{entry})
	suite.Require().NoError(err)
	suite.Require().Equal(int64(1), added)
}

func (suite *QueryHandlersTestSuite) TestGetActivityLogs_ReturnsWeekInCompletionOrder() {
	suite.seedActivity("O1", "S1", "Laksa", suite.now, suite.now.Add(10*time.Minute))
	suite.seedActivity("O2", "S2", "Satay", suite.now, suite.now.Add(5*time.Minute))
	suite.seedActivity("O3", "S1", "Laksa", suite.now.Add(7*24*time.Hour), suite.now.Add(7*24*time.Hour+time.Minute))

	handler := queries.NewGetActivityLogsQueryHandler(suite.database.DB, clock.NewFixed(suite.now))
	query, err := queries.NewGetActivityLogsQuery("2024-wk10")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("2024-wk10", result.WeekID)
	suite.Require().Len(result.Logs, 2)
	suite.Equal("O2", result.Logs[0].OrderID)
	suite.Equal("Satay", result.Logs[0].DishName)
	suite.Equal("S2", result.Logs[0].StallName)
	suite.Equal(5*time.Minute, result.Logs[0].Duration())
	suite.Equal("O1", result.Logs[1].OrderID)
	suite.True(result.Logs[1].OrderEndTime.Equal(suite.now.Add(10 * time.Minute)))
}

func (suite *QueryHandlersTestSuite) TestGetActivityLogs_CurrentWeekUsesClock() {
	suite.seedActivity("O1", "S1", "Laksa", suite.now, suite.now.Add(time.Minute))
	suite.seedActivity("O2", "S1", "Laksa", suite.now.Add(-7*24*time.Hour), suite.now.Add(-7*24*time.Hour))

	handler := queries.NewGetActivityLogsQueryHandler(suite.database.DB, clock.NewFixed(suite.now))

	result, err := handler.Handle(context.Background(), queries.NewGetCurrentWeekActivityLogsQuery())

	suite.Require().NoError(err)
	suite.Equal("2024-wk10", result.WeekID)
	suite.Require().Len(result.Logs, 1)
	suite.Equal("O1", result.Logs[0].OrderID)
}

func (suite *QueryHandlersTestSuite) TestGetActivityLogs_EmptyWeek() {
	handler := queries.NewGetActivityLogsQueryHandler(suite.database.DB, clock.NewFixed(suite.now))
	query, err := queries.NewGetActivityLogsQuery("2023-wk01")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result.Logs)
	suite.Empty(result.Logs)
}
