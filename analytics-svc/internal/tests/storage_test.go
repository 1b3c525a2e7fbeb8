package tests

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"tableorder/analytics-svc/internal/domain"
	"tableorder/analytics-svc/internal/storage"
	"tableorder/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestPostgresStore_Snapshot(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	ended := at(10, 15)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT id, table_id, session_id, status, created_at FROM orders")).
		WithArgs(10, from, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "session_id", "status", "created_at"}).
			AddRow(1, 3, 7, "completed", at(9, 0)).
			AddRow(2, 3, 7, "pending", at(9, 30)))
	sqlMock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id")).
		WithArgs(10, from, now).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "menu_item_id", "name", "category_id", "quantity", "price"}).
			AddRow(1, 11, "Burger", 4, 2, "10.00").
			AddRow(1, 99, "", 0, 1, "3.00").
			AddRow(2, 11, "Burger", 4, 1, "10.00"))
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM table_sessions s")).
		WithArgs(10, from, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "status", "start_time", "end_time", "capacity"}).
			AddRow(7, 3, "paid", at(8, 45), ended, 4).
			AddRow(8, 5, "active", at(12, 0), nil, 2))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM dining_tables")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM menu_categories c")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Mains"))
	sqlMock.ExpectCommit()

	snapshot, err := storage.NewPostgresStore(db).Snapshot(ctx, 10, from, now)

	require.NoError(t, err)
	require.Len(t, snapshot.Orders, 2)
	require.Len(t, snapshot.Orders[0].Lines, 2)
	assert.Equal(t, "", snapshot.Orders[0].Lines[1].Name)
	assert.True(t, decimal.RequireFromString("10").Equal(snapshot.Orders[1].Lines[0].Price))
	require.Len(t, snapshot.Sessions, 2)
	require.NotNil(t, snapshot.Sessions[0].EndTime)
	assert.True(t, ended.Equal(*snapshot.Sessions[0].EndTime))
	assert.Nil(t, snapshot.Sessions[1].EndTime)
	assert.Equal(t, 4, snapshot.Sessions[0].TableCapacity)
	assert.Equal(t, 6, snapshot.TableCount)
	assert.Equal(t, map[int]string{4: "Mains"}, snapshot.Categories)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresStore_SnapshotEmptyWindowSkipsLines(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "session_id", "status", "created_at"}))
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM table_sessions s")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "status", "start_time", "end_time", "capacity"}))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM dining_tables")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM menu_categories c")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	sqlMock.ExpectCommit()

	snapshot, err := storage.NewPostgresStore(db).Snapshot(ctx, 10, now.Add(-time.Hour), now)

	require.NoError(t, err)
	assert.NotNil(t, snapshot.Orders)
	assert.NotNil(t, snapshot.Sessions)
	assert.Empty(t, snapshot.Orders)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresStore_SnapshotRollsBackOnError(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM orders")).WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	_, err = storage.NewPostgresStore(db).Snapshot(ctx, 10, now.Add(-time.Hour), now)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRedisCache_Statistics(t *testing.T) {
	mr, client := newRedis(t)
	cache := storage.NewRedisCache(client, time.Minute)

	miss, err := cache.GetStatistics(ctx, 10, domain.RangeDay, "2026-10-15")
	require.NoError(t, err)
	assert.Nil(t, miss)

	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: []domain.OrderRecord{
		order(1, 1, domain.StatusPending, at(9, 0), line(1, "Burger", 1, 2, "10.00")),
	}})
	bundle.GeneratedAt = now
	require.NoError(t, cache.SetStatistics(ctx, "2026-10-15", &bundle))

	key := config.StatsCacheKey(10, "day", "2026-10-15")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, err := cache.GetStatistics(ctx, 10, domain.RangeDay, "2026-10-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TotalOrders)
	assert.Equal(t, "20", got.TotalRevenue.String())
	assert.NotNil(t, got.ItemPairings)
	assert.Len(t, got.HourlyDistribution, 24)

	nextDay, err := cache.GetStatistics(ctx, 10, domain.RangeDay, "2026-10-16")
	require.NoError(t, err)
	assert.Nil(t, nextDay, "yesterday's bundle is not served after midnight")

	mr.FastForward(2 * time.Minute)
	expired, err := cache.GetStatistics(ctx, 10, domain.RangeDay, "2026-10-15")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRedisCache_StatisticsOlderThanInvalidation(t *testing.T) {
	mr, client := newRedis(t)
	cache := storage.NewRedisCache(client, time.Minute)

	bundle := compute(domain.RangeWeek, domain.Snapshot{})
	bundle.GeneratedAt = now
	require.NoError(t, cache.SetStatistics(ctx, "2026-10-15", &bundle))

	require.NoError(t, mr.Set(config.StatsInvalidatedKey(10), strconv.FormatInt(now.Add(-time.Second).UnixNano(), 10)))
	got, err := cache.GetStatistics(ctx, 10, domain.RangeWeek, "2026-10-15")
	require.NoError(t, err)
	assert.NotNil(t, got, "computed after the last invalidation")

	require.NoError(t, mr.Set(config.StatsInvalidatedKey(10), strconv.FormatInt(now.Add(time.Second).UnixNano(), 10)))
	stale, err := cache.GetStatistics(ctx, 10, domain.RangeWeek, "2026-10-15")
	require.NoError(t, err)
	assert.Nil(t, stale)
}

func TestRedisCache_LiveCounters(t *testing.T) {
	mr, client := newRedis(t)
	cache := storage.NewRedisCache(client, time.Minute)

	empty, err := cache.LiveCounters(ctx, 10, "2026-10-15")
	require.NoError(t, err)
	assert.Zero(t, empty.Orders)
	assert.True(t, empty.Revenue.IsZero())

	key := config.LiveCountersKey("2026-10-15", 10)
	mr.HSet(key, config.LiveFieldOrders, "4")
	mr.HSet(key, config.LiveFieldCancelled, "1")
	mr.HSet(key, config.LiveFieldRevenueCents, "12350")

	got, err := cache.LiveCounters(ctx, 10, "2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Orders)
	assert.Equal(t, int64(1), got.Cancelled)
	assert.Equal(t, "123.5", got.Revenue.String())
	assert.Equal(t, "2026-10-15", got.Date)
}
