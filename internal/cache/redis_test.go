package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  Client
}

func (s *RedisCacheTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	cacheClient, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.cache = cacheClient
}

func (s *RedisCacheTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

func (s *RedisCacheTestSuite) TestSetAndGet() {
	ctx := context.Background()

	err := s.cache.Set(ctx, "session:42", []byte(`{"ID":"42"}`), time.Minute)
	s.Require().NoError(err)

	value, err := s.cache.Get(ctx, "session:42")
	s.Require().NoError(err)
	s.Equal([]byte(`{"ID":"42"}`), value)
}

func (s *RedisCacheTestSuite) TestGetMiss() {
	_, err := s.cache.Get(context.Background(), "session:absent")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *RedisCacheTestSuite) TestEntriesExpire() {
	ctx := context.Background()

	s.Require().NoError(s.cache.Set(ctx, "session:42", []byte("x"), time.Minute))

	s.mr.FastForward(2 * time.Minute)

	_, err := s.cache.Get(ctx, "session:42")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *RedisCacheTestSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.cache.Set(ctx, "session:42", []byte("x"), time.Minute))
	s.Require().NoError(s.cache.Delete(ctx, "session:42"))

	_, err := s.cache.Get(ctx, "session:42")
	s.ErrorIs(err, ErrCacheMiss)

	// Deleting an absent key is not an error
	s.NoError(s.cache.Delete(ctx, "session:42"))
}

func (s *RedisCacheTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisCacheTestSuite) TestKeysEntity() {
	keys := NewKeys("session")
	s.Equal("session:42", keys.Entity("42"))
}

func (s *RedisCacheTestSuite) TestKeysSearchDeterministic() {
	keys := NewKeys("session")

	a := keys.Search(map[string]string{"status": "PENDING", "patient_id": "p1"})
	b := keys.Search(map[string]string{"patient_id": "p1", "status": "PENDING"})
	c := keys.Search(map[string]string{"status": "SCHEDULED", "patient_id": "p1"})

	s.Equal(a, b)
	s.NotEqual(a, c)
	s.Contains(a, "session:search:")
}
