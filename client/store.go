package client

import (
	"context"
	"sync"
)

// Status describes where the store is in its request lifecycle.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is a point-in-time view of the review store.
type State struct {
	Reviews []Review
	Status  Status
	Err     string
}

// Notifier receives user-facing notifications emitted by the store, such as
// the confirmation after a delete.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Store mirrors the reviews of one product at a time. All state lives in a
// single goroutine; operations send transition events to it, so there is
// exactly one ordered view of the lifecycle: loading, then either succeeded
// or failed.
type Store struct {
	api      *API
	notifier Notifier

	events    chan func(*State)
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore creates a review store over the given API. notifier may be nil if
// the caller does not surface notifications.
func NewStore(api *API, notifier Notifier) *Store {
	s := &Store{
		api:      api,
		notifier: notifier,
		events:   make(chan func(*State)),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Store) loop() {
	state := State{Reviews: []Review{}, Status: StatusIdle}
	for {
		select {
		case apply := <-s.events:
			apply(&state)
		case <-s.done:
			return
		}
	}
}

// dispatch applies a transition on the store goroutine and waits for it.
func (s *Store) dispatch(apply func(*State)) {
	applied := make(chan struct{})
	select {
	case s.events <- func(st *State) {
		apply(st)
		close(applied)
	}:
		<-applied
	case <-s.done:
	}
}

func pending(st *State) {
	st.Status = StatusLoading
	st.Err = ""
}

func rejected(err error) func(*State) {
	return func(st *State) {
		st.Status = StatusFailed
		st.Err = err.Error()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	var snap State
	s.dispatch(func(st *State) {
		snap = *st
		snap.Reviews = append([]Review(nil), st.Reviews...)
	})
	return snap
}

// FetchReviews loads all reviews for a product, replacing the mirrored list
// wholesale on success.
func (s *Store) FetchReviews(ctx context.Context, productID string) error {
	s.dispatch(pending)

	reviews, err := s.api.FetchReviews(ctx, productID)
	if err != nil {
		s.dispatch(rejected(err))
		return err
	}

	s.dispatch(func(st *State) {
		st.Status = StatusSucceeded
		st.Reviews = reviews
	})
	return nil
}

// CreateReview submits a new review and appends the server-confirmed copy to
// the mirrored list. There is no optimistic insert and no lifecycle
// transition: Status tracks the fetch cycle only, so a failed create records
// the error and leaves both Status and the list untouched.
func (s *Store) CreateReview(ctx context.Context, productID string, input ReviewInput) (*Review, error) {
	review, err := s.api.CreateReview(ctx, productID, input)
	if err != nil {
		s.dispatch(func(st *State) {
			st.Err = err.Error()
		})
		return nil, err
	}

	s.dispatch(func(st *State) {
		st.Reviews = append(st.Reviews, *review)
	})
	return review, nil
}

// DeleteReview removes a review, notifies the user, and refreshes the
// mirrored list for the product the review belonged to. The refresh runs
// exactly once and only after a successful delete; it is the resync fetch,
// not the delete itself, that moves Status. A failed delete records the
// error and skips both the notification and the resync.
func (s *Store) DeleteReview(ctx context.Context, reviewID, productID string) error {
	if err := s.api.DeleteReview(ctx, reviewID); err != nil {
		s.dispatch(func(st *State) {
			st.Err = err.Error()
		})
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify("리뷰 삭제 완료")
	}

	return s.FetchReviews(ctx, productID)
}

// AddReview appends a review to the mirrored list without a server round trip.
func (s *Store) AddReview(review Review) {
	s.dispatch(func(st *State) {
		st.Reviews = append(st.Reviews, review)
	})
}

// RemoveReview drops a review from the mirrored list without a server round trip.
func (s *Store) RemoveReview(reviewID string) {
	s.dispatch(func(st *State) {
		kept := st.Reviews[:0]
		for _, rv := range st.Reviews {
			if rv.ID != reviewID {
				kept = append(kept, rv)
			}
		}
		st.Reviews = kept
	})
}

// Close stops the store goroutine. The store must not be used afterwards.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
