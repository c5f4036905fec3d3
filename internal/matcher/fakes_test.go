package matcher_test

import (
	"context"
	"sync"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/internal/notify"
)

type fakeLocationStore struct {
	mu        sync.Mutex
	rows      map[string]*types.UserLocation
	upsertErr error
	queryErr  error
	scans     int
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{rows: make(map[string]*types.UserLocation)}
}

func (s *fakeLocationStore) Upsert(_ context.Context, row *types.UserLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.upsertErr != nil {
		return s.upsertErr
	}

	if err := row.Validate(); err != nil {
		return err
	}

	copied := *row
	s.rows[row.UserID] = &copied

	return nil
}

func (s *fakeLocationStore) GetFreshLocations(
	_ context.Context, excludeUserID string, since time.Time,
) ([]*types.UserLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scans++

	if s.queryErr != nil {
		return nil, s.queryErr
	}

	var fresh []*types.UserLocation

	for _, row := range s.rows {
		if row.UserID == excludeUserID || row.LastUpdated.Before(since) {
			continue
		}

		fresh = append(fresh, row)
	}

	return fresh, nil
}

type fakeFriendStore struct {
	mu            sync.Mutex
	relationships []*types.UserFriend
	requests      []*types.FriendRequest
	relErr        error
	requestErr    error
	createErr     error
}

func (s *fakeFriendStore) HasRelationship(
	_ context.Context, userID, otherUserID string, status types.FriendStatus,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.relErr != nil {
		return false, s.relErr
	}

	for _, rel := range s.relationships {
		if rel.Status != status {
			continue
		}

		if (rel.UserID == userID && rel.FriendID == otherUserID) ||
			(rel.UserID == otherUserID && rel.FriendID == userID) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeFriendStore) HasPendingRequest(_ context.Context, userID, otherUserID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestErr != nil {
		return false, s.requestErr
	}

	for _, req := range s.requests {
		if req.Status != types.FriendStatusPending {
			continue
		}

		if (req.FromUserID == userID && req.ToUserID == otherUserID) ||
			(req.FromUserID == otherUserID && req.ToUserID == userID) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeFriendStore) CreateRequest(_ context.Context, request *types.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	if err := request.Validate(); err != nil {
		return err
	}

	copied := *request
	s.requests = append(s.requests, &copied)

	return nil
}

type fakeNotificationStore struct {
	mu        sync.Mutex
	records   []*types.MatchNotification
	existsErr error
	createErr error
}

func (s *fakeNotificationStore) ExistsSince(
	_ context.Context, userID, otherUserID string, since time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsErr != nil {
		return false, s.existsErr
	}

	pairKey := types.PairKey(userID, otherUserID)

	for _, record := range s.records {
		if record.PairKey == pairKey && !record.CreatedAt.Before(since) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeNotificationStore) Create(_ context.Context, record *types.MatchNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	if err := record.Validate(); err != nil {
		return err
	}

	copied := *record
	copied.PairKey = types.PairKey(record.FromUserID, record.ToUserID)
	s.records = append(s.records, &copied)

	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	denyAll  bool
	acquires int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) Acquire(_ context.Context, pairKey string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.acquires++

	if l.denyAll || l.held[pairKey] {
		return nil, false, nil
	}

	l.held[pairKey] = true

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, pairKey)
	}

	return release, true, nil
}

type sentPush struct {
	userID       string
	notification notify.Notification
}

type fakeNotifier struct {
	mu            sync.Mutex
	sent          []sentPush
	permissionErr error
	sendErr       error
}

func (n *fakeNotifier) RequestPermission(_ context.Context) error {
	return n.permissionErr
}

func (n *fakeNotifier) Send(_ context.Context, userID string, notification notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendErr != nil {
		return n.sendErr
	}

	n.sent = append(n.sent, sentPush{userID: userID, notification: notification})

	return nil
}

// fakeProvider feeds a caller-controlled fix stream into a session.
type fakeProvider struct {
	fixes         chan location.Fix
	permissionErr error
	watchErr      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{fixes: make(chan location.Fix, 16)}
}

func (p *fakeProvider) RequestPermission(_ context.Context) error {
	return p.permissionErr
}

func (p *fakeProvider) Watch(ctx context.Context, _ location.WatchOptions) (<-chan location.Fix, error) {
	if p.watchErr != nil {
		return nil, p.watchErr
	}

	out := make(chan location.Fix)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case fix, ok := <-p.fixes:
				if !ok {
					return
				}

				select {
				case out <- fix:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
