package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []model.Item {
	return []model.Item{
		{ID: "1", Name: "milk", Category: "Other"},
		{ID: "2", Name: "bread", Category: "Other"},
	}
}

func TestReconcilerSuggestingFlow(t *testing.T) {
	mock := NewMockVerifier()
	mock.Respond([]model.Assignment{
		{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
		{ID: "2", Name: "bread", Category: "Bakery"},
	})
	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	require.True(t, r.HasChangedSinceLastCheck(items))

	st := <-r.Start(context.Background(), items)
	require.Equal(t, Suggesting, st.Phase)
	require.Len(t, st.Suggestions, 2)

	// Fingerprint is recorded on success, before the user decides
	assert.False(t, r.HasChangedSinceLastCheck(items))

	applied := r.Accept(items)
	assert.Len(t, applied, 2)
	assert.Equal(t, "Dairy & Eggs", items[0].Category)
	assert.Equal(t, "Bakery", items[1].Category)
	assert.Equal(t, Idle, r.State().Phase)
	assert.Empty(t, r.State().Suggestions)

	// Category changes do not invalidate the verification
	assert.False(t, r.HasChangedSinceLastCheck(items))
}

func TestReconcilerEmptyDiffReturnsToIdle(t *testing.T) {
	mock := NewMockVerifier() // echoes input unchanged
	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	st := <-r.Start(context.Background(), items)
	assert.Equal(t, Idle, st.Phase)
	assert.Empty(t, st.Suggestions)
	assert.False(t, r.HasChangedSinceLastCheck(items))
}

func TestReconcilerReject(t *testing.T) {
	mock := NewMockVerifier()
	mock.Respond([]model.Assignment{
		{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
	})
	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	st := <-r.Start(context.Background(), items)
	require.Equal(t, Suggesting, st.Phase)

	r.Reject()
	assert.Equal(t, Idle, r.State().Phase)
	assert.Equal(t, "Other", items[0].Category)
}

func TestReconcilerFailure(t *testing.T) {
	mock := NewMockVerifier()
	mock.Fail(errors.New("api error (status 500)"))
	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	st := <-r.Start(context.Background(), items)
	require.Equal(t, Failed, st.Phase)
	assert.Equal(t, "category refinement failed", st.Reason)

	// Fingerprint stays stale so the next change check retries
	assert.True(t, r.HasChangedSinceLastCheck(items))

	// Failed -> Checking -> Suggesting on retry
	mock.Respond([]model.Assignment{
		{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
	})
	st = <-r.Start(context.Background(), items)
	assert.Equal(t, Suggesting, st.Phase)
	assert.Empty(t, st.Reason)
}

func TestReconcilerSupersession(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	mock := NewMockVerifier()
	mock.RespondWith(func(call int, items []model.Assignment) ([]model.Assignment, error) {
		if call == 0 {
			close(firstStarted)
			// Simulate work that cannot be physically canceled
			<-releaseFirst
			return []model.Assignment{{ID: "1", Name: "milk", Category: "Frozen"}}, nil
		}
		return []model.Assignment{
			{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
			{ID: "2", Name: "bread", Category: "Bakery"},
		}, nil
	})

	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	first := r.Start(context.Background(), items)
	select {
	case <-firstStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("first verification never dispatched")
	}

	second := r.Start(context.Background(), items)
	st := <-second
	require.Equal(t, Suggesting, st.Phase)
	require.Len(t, st.Suggestions, 2)

	// The superseded result arrives late and must have no effect
	close(releaseFirst)
	_, open := <-first
	assert.False(t, open, "superseded request should close without a state")

	st = r.State()
	assert.Equal(t, Suggesting, st.Phase)
	assert.Len(t, st.Suggestions, 2)

	applied := r.Accept(items)
	require.Len(t, applied, 2)
	assert.Equal(t, "Dairy & Eggs", items[0].Category)
}

func TestReconcilerResetDiscardsInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	mock := NewMockVerifier()
	mock.RespondWith(func(_ int, _ []model.Assignment) ([]model.Assignment, error) {
		close(started)
		<-release
		return []model.Assignment{{ID: "1", Name: "milk", Category: "Frozen"}}, nil
	})

	r := New(mock, taxonomy.Default(), nil)
	items := testItems()

	done := r.Start(context.Background(), items)
	<-started

	r.Reset()
	assert.Equal(t, Idle, r.State().Phase)
	assert.True(t, r.HasChangedSinceLastCheck(items))

	close(release)
	_, open := <-done
	assert.False(t, open)
	assert.Equal(t, Idle, r.State().Phase)
	assert.Equal(t, "Other", items[0].Category)
}

func TestReconcilerAcceptOutsideSuggesting(t *testing.T) {
	r := New(NewMockVerifier(), taxonomy.Default(), nil)
	items := testItems()

	assert.Nil(t, r.Accept(items))
	r.Reject()
	assert.Equal(t, Idle, r.State().Phase)
	assert.Equal(t, "Other", items[0].Category)
}

func TestReconcilerRestoreFingerprint(t *testing.T) {
	r := New(NewMockVerifier(), taxonomy.Default(), nil)
	items := testItems()

	r.RestoreFingerprint(Fingerprint(items))
	assert.False(t, r.HasChangedSinceLastCheck(items))

	renamed := testItems()
	renamed[0].Name = "oat milk"
	assert.True(t, r.HasChangedSinceLastCheck(renamed))
}
