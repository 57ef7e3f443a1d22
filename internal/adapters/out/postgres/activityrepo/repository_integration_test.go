package activityrepo_test

import (
	"context"
	"testing"
	"time"

	"hawkerflow/internal/adapters/out/postgres/activityrepo"
	"hawkerflow/internal/adapters/out/postgres/pgtest"
	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type ActivityRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *activityrepo.GormActivityRepository
}

func (suite *ActivityRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = activityrepo.NewGormActivityRepository(database.DB)
}

func (suite *ActivityRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *ActivityRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ActivityRepositoryIntegrationTestSuite) entries() []*activity.Entry {
	orderID, err := kernel.NewOrderID("O1")
	suite.Require().NoError(err)
	ref, err := kernel.NewStallRef("Maxwell", "S1")
	suite.Require().NoError(err)

	start := time.Date(2025, 3, 27, 11, 0, 0, 0, time.UTC)
	d1, err := activity.NewEntry(orderID, ref, "D1", 2, start, start.Add(10*time.Minute))
	suite.Require().NoError(err)
	d2, err := activity.NewEntry(orderID, ref, "D2", 1, start, start.Add(15*time.Minute))
	suite.Require().NoError(err)
	return []*activity.Entry{d1, d2}
}

func (suite *ActivityRepositoryIntegrationTestSuite) TestAddAll_SkipsRedelivered() {
	ctx := context.Background()

	stored, err := suite.repository.AddAll(ctx, suite.entries())
	suite.Require().NoError(err)
	suite.Equal(int64(2), stored)

	stored, err = suite.repository.AddAll(ctx, suite.entries())
	suite.Require().NoError(err)
	suite.Zero(stored)

	var rows []activityrepo.EntryDTO
	suite.Require().NoError(suite.database.DB.Order("dish_name").Find(&rows).Error)
	suite.Require().Len(rows, 2)
	suite.Equal("2025-wk13", rows[0].WeekID)
	suite.Equal(2, rows[0].Quantity)
	suite.Equal("S1", rows[1].StallName)
}

func (suite *ActivityRepositoryIntegrationTestSuite) TestAddAll_Empty() {
	stored, err := suite.repository.AddAll(context.Background(), nil)
	suite.Require().NoError(err)
	suite.Zero(stored)
}

func TestActivityRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityRepositoryIntegrationTestSuite))
}
