package invite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniform-shop-api/internal/domain"
	pkgtoken "github.com/uniform-shop-api/internal/pkg/token"
)

type fakeInviteStore struct {
	mu      sync.Mutex
	records map[string]*domain.SupplierInvite
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{records: make(map[string]*domain.SupplierInvite)}
}

func (f *fakeInviteStore) Put(_ context.Context, inv *domain.SupplierInvite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[inv.TokenHash]; exists {
		return domain.ErrConflict
	}
	cp := *inv
	f.records[inv.TokenHash] = &cp
	return nil
}

func (f *fakeInviteStore) Consume(_ context.Context, tokenHash, usedBy string, now time.Time) (*domain.SupplierInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[tokenHash]
	if !ok || rec.UsedAt != nil || rec.ExpiresAt <= now.Unix() {
		return nil, domain.ErrTokenInvalidOrExpired
	}
	used := now.UTC()
	rec.UsedAt = &used
	rec.UsedBy = usedBy
	cp := *rec
	return &cp, nil
}

func (f *fakeInviteStore) get(hash string) *domain.SupplierInvite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[hash]
}

func strPtr(s string) *string { return &s }

func newTestService(store *fakeInviteStore) Service {
	return NewService(ServiceDeps{Store: store, TTL: 7 * 24 * time.Hour})
}

func TestIssue_PersistsHashedRecordWithSupplierRole(t *testing.T) {
	store := newFakeInviteStore()
	svc := newTestService(store)

	raw, err := svc.Issue(context.Background(), Options{SupplierID: strPtr("s1"), Email: strPtr("x@y.com")})
	require.NoError(t, err)

	assert.Nil(t, store.get(raw))
	rec := store.get(pkgtoken.Hash(raw))
	require.NotNil(t, rec)
	assert.Equal(t, domain.RoleSupplier, rec.Role)
	assert.Equal(t, "s1", *rec.SupplierID)
	assert.Equal(t, "x@y.com", *rec.Email)
	assert.Nil(t, rec.UsedAt)
}

func TestConsume_BoundInviteReturnsSupplierID(t *testing.T) {
	store := newFakeInviteStore()
	svc := newTestService(store)

	raw, err := svc.Issue(context.Background(), Options{SupplierID: strPtr("s1")})
	require.NoError(t, err)

	res, err := svc.Consume(context.Background(), raw, "u9")
	require.NoError(t, err)
	require.NotNil(t, res.SupplierID)
	assert.Equal(t, "s1", *res.SupplierID)
	assert.Equal(t, "u9", store.get(pkgtoken.Hash(raw)).UsedBy)
}

func TestConsume_UnboundInviteReturnsNilSupplierID(t *testing.T) {
	svc := newTestService(newFakeInviteStore())

	raw, err := svc.Issue(context.Background(), Options{})
	require.NoError(t, err)

	res, err := svc.Consume(context.Background(), raw, "u9")
	require.NoError(t, err)
	assert.Nil(t, res.SupplierID)
	assert.Nil(t, res.Email)
}

func TestConsume_SecondAttemptFails(t *testing.T) {
	svc := newTestService(newFakeInviteStore())

	raw, err := svc.Issue(context.Background(), Options{})
	require.NoError(t, err)

	_, err = svc.Consume(context.Background(), raw, "u1")
	require.NoError(t, err)

	_, err = svc.Consume(context.Background(), raw, "u2")
	assert.True(t, errors.Is(err, domain.ErrTokenInvalidOrExpired))
}

func TestConsume_Expired(t *testing.T) {
	store := newFakeInviteStore()
	svc := newTestService(store)

	raw, err := svc.Issue(context.Background(), Options{})
	require.NoError(t, err)
	store.get(pkgtoken.Hash(raw)).ExpiresAt = time.Now().Add(-time.Second).Unix()

	_, err = svc.Consume(context.Background(), raw, "u1")
	assert.True(t, errors.Is(err, domain.ErrTokenInvalidOrExpired))
}

func TestConsume_ConcurrentAcceptanceYieldsOneWinner(t *testing.T) {
	svc := newTestService(newFakeInviteStore())

	raw, err := svc.Issue(context.Background(), Options{SupplierID: strPtr("s1")})
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Consume(context.Background(), raw, "u1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
}
