package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	user  UserProfile
	err   error
}

func (f *fakeFetcher) CurrentUser(ctx context.Context) (UserProfile, error) {
	f.calls++
	return f.user, f.err
}

func TestBootstrapper_AnonymousOnFailure(t *testing.T) {
	sess := NewSession(NewMemoryTokenStore())
	fetcher := &fakeFetcher{err: errors.New("401 unauthorized")}
	boot := NewBootstrapper(sess, fetcher)

	require.True(t, sess.Loading())
	require.Equal(t, Resolving, boot.State())

	boot.Run(context.Background())

	assert.Equal(t, Resolved, boot.State())
	assert.False(t, sess.Loading())
	assert.False(t, sess.Authenticated())
	assert.Equal(t, 1, fetcher.calls)
}

func TestBootstrapper_AuthenticatedOnSuccess(t *testing.T) {
	sess := NewSession(NewMemoryTokenStore())
	want := UserProfile{ID: "u-1", Name: "x", Email: "x@example.com"}
	boot := NewBootstrapper(sess, &fakeFetcher{user: want})

	boot.Run(context.Background())

	got, ok := sess.User()
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("user profile mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, sess.Loading())
}

func TestBootstrapper_RunsExactlyOnce(t *testing.T) {
	sess := NewSession(NewMemoryTokenStore())
	fetcher := &fakeFetcher{err: errors.New("network unreachable")}
	boot := NewBootstrapper(sess, fetcher)

	boot.Run(context.Background())
	boot.Run(context.Background())
	boot.Run(context.Background())

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, Resolved, boot.State())
}
