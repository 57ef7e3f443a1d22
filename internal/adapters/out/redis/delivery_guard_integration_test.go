package redis_test

import (
	"context"
	"testing"
	"time"

	redisadapter "hawkerflow/internal/adapters/out/redis"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type DeliveryGuardIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
}

func (suite *DeliveryGuardIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	suite.client, err = redisadapter.NewClient(uri)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *DeliveryGuardIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *DeliveryGuardIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryGuardIntegrationTestSuite) TestMarkProcessed_ThenIsProcessed() {
	ctx := context.Background()
	guard := redisadapter.NewDeliveryGuard(suite.client, "fulfillment", time.Hour)

	seen, err := guard.IsProcessed(ctx, "evt-1")
	suite.Require().NoError(err)
	suite.False(seen)

	suite.Require().NoError(guard.MarkProcessed(ctx, "evt-1"))
	suite.Require().NoError(guard.MarkProcessed(ctx, "evt-1"), "marking twice is harmless")

	seen, err = guard.IsProcessed(ctx, "evt-1")
	suite.Require().NoError(err)
	suite.True(seen)

	other, err := guard.IsProcessed(ctx, "evt-2")
	suite.Require().NoError(err)
	suite.False(other)
}

func (suite *DeliveryGuardIntegrationTestSuite) TestMarkProcessed_KeysExpireAndAreScopedByService() {
	ctx := context.Background()
	guard := redisadapter.NewDeliveryGuard(suite.client, "fulfillment", 0)

	suite.Require().NoError(guard.MarkProcessed(ctx, "evt-1"))

	ttl, err := suite.client.TTL(ctx, "dedup:fulfillment:evt-1").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 47*time.Hour)
	suite.LessOrEqual(ttl, redisadapter.DefaultDedupTTL)

	activity := redisadapter.NewDeliveryGuard(suite.client, "activity", time.Hour)
	seen, err := activity.IsProcessed(ctx, "evt-1")
	suite.Require().NoError(err)
	suite.False(seen)
}

func (suite *DeliveryGuardIntegrationTestSuite) TestIsProcessed_FailsWhenServerUnreachable() {
	client, err := redisadapter.NewClient("127.0.0.1:1")
	suite.Require().NoError(err)
	defer client.Close()

	guard := redisadapter.NewDeliveryGuard(client, "fulfillment", time.Hour)
	_, err = guard.IsProcessed(context.Background(), "evt-1")

	suite.Require().Error(err)
}

func TestDeliveryGuardIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryGuardIntegrationTestSuite))
}
