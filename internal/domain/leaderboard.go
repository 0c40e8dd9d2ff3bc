package domain

import (
	"context"

	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/pngfun/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type LeaderboardDomain interface {
	Get(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type leaderboardDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

// NewLeaderboardDomain creates the leaderboard domain. The redis client is
// optional, without it every request reads the database.
func NewLeaderboardDomain(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *leaderboardDomain {
	return &leaderboardDomain{
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (d *leaderboardDomain) Get(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	cfg := xcontext.Configs(ctx).Leaderboard
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	users, err := d.getTopUsers(ctx, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i := range users {
		entries = append(entries, model.ConvertLeaderboardEntry(i+1, &users[i]))
	}

	return &model.GetLeaderboardResponse{Leaderboard: entries}, nil
}

func (d *leaderboardDomain) getTopUsers(ctx context.Context, limit int) ([]entity.User, error) {
	if d.redisClient == nil {
		return d.userRepo.GetLeaderboard(ctx, limit)
	}

	cached, err := d.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyLeaderboard, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read leaderboard cache, fallback to database: %v", err)
		return d.userRepo.GetLeaderboard(ctx, limit)
	}

	if len(cached) == 0 {
		return d.loadCache(ctx, limit)
	}

	ids := []string{}
	for _, z := range cached {
		if id, ok := z.Member.(string); ok {
			ids = append(ids, id)
		}
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	userSet := map[string]entity.User{}
	for _, u := range users {
		userSet[u.ID] = u
	}

	ordered := []entity.User{}
	for _, id := range ids {
		if u, ok := userSet[id]; ok {
			ordered = append(ordered, u)
		}
	}

	return ordered, nil
}

// loadCache fills the sorted set with the top users of the database. The
// score of a member is its position counted from the bottom, so a reverse
// range returns the database order including its tie-breaks.
func (d *leaderboardDomain) loadCache(ctx context.Context, limit int) ([]entity.User, error) {
	cfg := xcontext.Configs(ctx).Leaderboard
	users, err := d.userRepo.GetLeaderboard(ctx, cfg.MaxLimit)
	if err != nil {
		return nil, err
	}

	if len(users) > 0 {
		members := []redis.Z{}
		for i, u := range users {
			members = append(members, redis.Z{Score: float64(len(users) - i), Member: u.ID})
		}

		if err := d.redisClient.ZAdd(ctx, common.RedisKeyLeaderboard, members...); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot fill leaderboard cache: %v", err)
		} else if err := d.redisClient.Expire(ctx, common.RedisKeyLeaderboard, cfg.CacheTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set ttl of leaderboard cache: %v", err)
		}
	}

	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}
