package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 默认使用进程内的 miniredis；设置 TEST_REDIS_ADDR 时改用真实的 Redis。
func newTestRepository(t *testing.T) (*content.Repository, *redis.Client, string) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	prefix := "test-" + uuid.NewString()
	t.Cleanup(func() {
		keys, _ := rdb.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
		rdb.Close()
	})
	return NewRepository(rdb, prefix), rdb, prefix
}

func newLocation(t *testing.T, name string, lat, lng float64) *content.Location {
	t.Helper()
	l, err := content.NewLocation(content.LocationInput{Name: name, Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	return l
}

func TestLocationLifecycle(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	locs, err := repo.Locations.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, locs)

	miami, err := repo.Locations.Create(ctx, newLocation(t, "Miami", 25.7617, -80.1918))
	require.NoError(t, err)
	assert.NotEmpty(t, miami.Key)
	_, err = repo.Locations.Create(ctx, newLocation(t, "Boston", 42.36, -71.06))
	require.NoError(t, err)

	locs, err = repo.Locations.List(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Miami", locs[0].Name)
	assert.Equal(t, "Boston", locs[1].Name)

	n, err := repo.Locations.Update(ctx, content.Filter{content.ColumnName: "Miami"}, content.Filter{content.ColumnLat: 26.0, content.ColumnLng: -80.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.Locations.Find(ctx, content.Filter{content.ColumnKey: miami.Key})
	require.NoError(t, err)
	assert.Equal(t, 26.0, got.Lat)

	n, err = repo.Locations.Delete(ctx, content.Filter{content.ColumnName: "Miami"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Locations.Delete(ctx, content.Filter{content.ColumnName: "Miami"})
	assert.ErrorIs(t, err, content.ErrNotFound)

	locs, err = repo.Locations.List(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Boston", locs[0].Name)
}

func TestSlotFilterMatchesIntegerIDs(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	// JSON 解码后的 ID 必须仍是 int，否则 Filter.Match 无法命中
	pic, err := content.NewPicture(content.PictureInput{Component: "Hero", ID: new(int), ImageURL: "/h.jpg"})
	require.NoError(t, err)
	_, err = repo.Pictures.Create(ctx, pic)
	require.NoError(t, err)

	found, err := repo.Pictures.Find(ctx, content.Filter{content.ColumnRecordID: 0})
	require.NoError(t, err)
	assert.Equal(t, "Hero", found.Component)
}

func TestLoadAllSkipsDanglingKeys(t *testing.T) {
	repo, rdb, prefix := newTestRepository(t)
	ctx := context.Background()

	txt, err := content.NewText(content.TextInput{Component: "Mission", ID: new(int), TextDescription: "hello"})
	require.NoError(t, err)
	_, err = repo.Texts.Create(ctx, txt)
	require.NoError(t, err)
	require.NoError(t, rdb.RPush(ctx, prefix+":text:order", "missing-key").Err())

	texts, err := repo.Texts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, texts, 1)
}

func TestEmptyFilterRejected(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	_, err := repo.Texts.Delete(context.Background(), content.Filter{})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func newPicture(t *testing.T, component string, id int, url string) *content.Picture {
	t.Helper()
	p, err := content.NewPicture(content.PictureInput{Component: component, ID: &id, ImageURL: url})
	require.NoError(t, err)
	return p
}

func TestUpdateReplacesEveryMatch(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Pictures.Create(ctx, newPicture(t, "Hero", 1, "/old.jpg"))
	require.NoError(t, err)
	_, err = repo.Pictures.Create(ctx, newPicture(t, "Hero", 1, "/old.jpg"))
	require.NoError(t, err)
	_, err = repo.Pictures.Create(ctx, newPicture(t, "Gallery", 1, "/g.jpg"))
	require.NoError(t, err)

	n, err := repo.Pictures.Update(ctx,
		content.Filter{content.ColumnComponent: "Hero", content.ColumnRecordID: 1},
		content.Filter{content.ColumnImageURL: "/new.jpg"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	pics, err := repo.Pictures.List(ctx)
	require.NoError(t, err)
	require.Len(t, pics, 3)
	assert.Equal(t, first.Key, pics[0].Key)
	assert.Equal(t, "/new.jpg", pics[0].ImageURL)
	assert.Equal(t, "/new.jpg", pics[1].ImageURL)
	assert.Equal(t, "/g.jpg", pics[2].ImageURL)
	assert.False(t, pics[0].UpdatedAt.Before(first.UpdatedAt))

	_, err = repo.Pictures.Update(ctx, content.Filter{content.ColumnComponent: "Footer"}, content.Filter{content.ColumnImageURL: "/x.jpg"})
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = repo.Pictures.Update(ctx, content.Filter{content.ColumnComponent: "Hero"}, content.Filter{})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func TestDeleteCompoundFilter(t *testing.T) {
	repo, rdb, prefix := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []int{1, 2} {
		_, err := repo.Pictures.Create(ctx, newPicture(t, "Gallery", id, "/g.jpg"))
		require.NoError(t, err)
	}
	_, err := repo.Pictures.Create(ctx, newPicture(t, "Hero", 1, "/h.jpg"))
	require.NoError(t, err)

	n, err := repo.Pictures.Delete(ctx, content.Filter{content.ColumnComponent: "Gallery", content.ColumnRecordID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Pictures.Delete(ctx, content.Filter{content.ColumnComponent: "Gallery"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	pics, err := repo.Pictures.List(ctx)
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Equal(t, "Hero", pics[0].Component)

	// 顺序列表与文档同步删除
	order, err := rdb.LRange(ctx, prefix+":picture:order", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{pics[0].Key}, order)
}

func TestCreateFailureLeavesRecordUntouched(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	repo := NewRepository(rdb, "test")

	srv.Close()
	loc := newLocation(t, "Miami", 25.7617, -80.1918)
	_, err := repo.Locations.Create(context.Background(), loc)
	require.ErrorIs(t, err, content.ErrStorageUnavailable)
	assert.Empty(t, loc.Key)
	assert.True(t, loc.CreatedAt.IsZero())
}
