package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		SetClient(nil)
		mr.Close()
	})
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out payload
	found, err := GetJSON(ctx, "user:1", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	in := payload{ID: 1, Name: "Ada"}
	require.NoError(t, SetJSON(ctx, "user:1", in, time.Minute))

	found, err = GetJSON(ctx, "user:1", &out)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{ID: 7, Name: "Grace"}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Grace", first.Name)

	// Second call is served from cache.
	var second payload
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAsideFetchError(t *testing.T) {
	setupMiniredis(t)

	var out payload
	boom := errors.New("db down")
	err := Aside(context.Background(), "post:1", &out, PostTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestAsideNoClient(t *testing.T) {
	SetClient(nil)

	var out payload
	err := Aside(context.Background(), "user:2", &out, UserTTL, func() error {
		out = payload{ID: 2, Name: "Linus"}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "Linus", out.Name)
}

func TestInvalidateProfile(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileKey(3), payload{ID: 3}, ProfileTTL))
	require.NoError(t, SetJSON(ctx, ProfilesListKey, []payload{{ID: 3}}, ProfileListTTL))

	InvalidateProfile(ctx, 3)

	assert.False(t, mr.Exists(ProfileKey(3)))
	assert.False(t, mr.Exists(ProfilesListKey))
}
