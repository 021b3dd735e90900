package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"leadswift_backend/internal/feature/analytics/domain/entity"
)

// mockMetricRepository はテスト用のMetricRepositoryモック実装です。
type mockMetricRepository struct {
	listActiveFn func(ctx context.Context) ([]entity.Metric, error)
	upsertAllFn  func(ctx context.Context, metrics []entity.Metric) error
}

func (m *mockMetricRepository) ListActive(ctx context.Context) ([]entity.Metric, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockMetricRepository) UpsertAll(ctx context.Context, metrics []entity.Metric) error {
	if m.upsertAllFn != nil {
		return m.upsertAllFn(ctx, metrics)
	}
	return nil
}

var sampleMetrics = []entity.Metric{
	{Key: "leads_contacted", Label: "Leads Contacted", Category: "outreach", Unit: entity.UnitCount, Value: 10, Previous: 8, IsActive: true, SortKey: 10},
}

// TestNewCachingMetricRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingMetricRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{name: "default values when zero/empty", expectedTTL: DefaultMetricTTL, expectedNamespace: "metrics"},
		{name: "negative ttl uses default", ttl: -time.Minute, expectedTTL: DefaultMetricTTL, expectedNamespace: "metrics"},
		{name: "custom values preserved", ttl: 10 * time.Minute, namespace: "custom", expectedTTL: 10 * time.Minute, expectedNamespace: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingMetricRepository(nil, tt.ttl, &mockMetricRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingMetricRepository_ListActive_NilRedis はRedisがnilの場合に内部リポジトリを直接呼び出すことを検証します。
func TestCachingMetricRepository_ListActive_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockMetricRepository{listActiveFn: func(ctx context.Context) ([]entity.Metric, error) { return sampleMetrics, nil }}
	repo := NewCachingMetricRepository(nil, time.Minute, inner, "")

	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 metric, got %d", len(got))
	}
}

// TestCachingMetricRepository_ListActive_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingMetricRepository_ListActive_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(sampleMetrics)
	mock.ExpectGet("metrics:active").SetVal(string(cached))

	innerCalled := false
	inner := &mockMetricRepository{listActiveFn: func(ctx context.Context) ([]entity.Metric, error) {
		innerCalled = true
		return nil, nil
	}}

	repo := NewCachingMetricRepository(rdb, time.Minute, inner, "metrics")
	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(got) != 1 || got[0].Key != "leads_contacted" || got[0].Previous != 8 {
		t.Errorf("unexpected cached metrics: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMetricRepository_ListActive_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingMetricRepository_ListActive_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected, _ := json.Marshal(sampleMetrics)
	mock.ExpectGet("metrics:active").RedisNil()
	mock.ExpectSet("metrics:active", expected, time.Minute).SetVal("OK")

	inner := &mockMetricRepository{listActiveFn: func(ctx context.Context) ([]entity.Metric, error) { return sampleMetrics, nil }}

	repo := NewCachingMetricRepository(rdb, time.Minute, inner, "metrics")
	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 metric, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMetricRepository_ListActive_CorruptedCache は破損したキャッシュを削除してDBにフォールバックすることを検証します。
func TestCachingMetricRepository_ListActive_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected, _ := json.Marshal(sampleMetrics)
	mock.ExpectGet("metrics:active").SetVal("invalid json")
	mock.ExpectDel("metrics:active").SetVal(1)
	mock.ExpectSet("metrics:active", expected, time.Minute).SetVal("OK")

	inner := &mockMetricRepository{listActiveFn: func(ctx context.Context) ([]entity.Metric, error) { return sampleMetrics, nil }}

	repo := NewCachingMetricRepository(rdb, time.Minute, inner, "metrics")
	if _, err := repo.ListActive(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMetricRepository_ListActive_InnerError は内部リポジトリのエラーが伝播されることを検証します。
func TestCachingMetricRepository_ListActive_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("metrics:active").RedisNil()

	inner := &mockMetricRepository{listActiveFn: func(ctx context.Context) ([]entity.Metric, error) { return nil, expectedErr }}

	repo := NewCachingMetricRepository(rdb, time.Minute, inner, "metrics")
	_, err := repo.ListActive(context.Background())
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingMetricRepository_UpsertAll_Invalidation はUpsertAll後にキャッシュが無効化されることを検証します。
func TestCachingMetricRepository_UpsertAll_Invalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "metrics:*", 200).SetVal([]string{"metrics:active"}, 0)
	mock.ExpectDel("metrics:active").SetVal(1)

	repo := NewCachingMetricRepository(rdb, time.Minute, &mockMetricRepository{}, "metrics")
	if err := repo.UpsertAll(context.Background(), sampleMetrics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMetricRepository_UpsertAll_InnerError は内部エラー時にキャッシュに触れないことを検証します。
func TestCachingMetricRepository_UpsertAll_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("upsert error")
	inner := &mockMetricRepository{upsertAllFn: func(ctx context.Context, metrics []entity.Metric) error { return expectedErr }}

	repo := NewCachingMetricRepository(rdb, time.Minute, inner, "metrics")
	if err := repo.UpsertAll(context.Background(), sampleMetrics); !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestCachingMetricRepository_UpsertAll_ScanFailure はキャッシュ無効化の失敗がエラーにならないことを検証します。
func TestCachingMetricRepository_UpsertAll_ScanFailure(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "metrics:*", 200).SetErr(errors.New("redis down"))

	repo := NewCachingMetricRepository(rdb, time.Minute, &mockMetricRepository{}, "metrics")
	if err := repo.UpsertAll(context.Background(), sampleMetrics); err != nil {
		t.Fatalf("invalidation failure must not fail the write: %v", err)
	}
}
