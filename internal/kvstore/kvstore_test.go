package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-hablu/chatter/pkg/database"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "userToken")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "userToken", "mock-token-1"))
	v, err := s.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", v)

	require.NoError(t, s.Set(ctx, "userToken", "mock-token-2"))
	v, err = s.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "mock-token-2", v)

	require.NoError(t, s.Set(ctx, "userProfile", `{"id":"user_1"}`))
	require.NoError(t, s.Delete(ctx, "userToken"))
	require.NoError(t, s.Delete(ctx, "userToken"))

	_, err = s.Get(ctx, "userToken")
	assert.ErrorIs(t, err, ErrNotFound)
	v, err = s.Get(ctx, "userProfile")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"user_1"}`, v)

	assert.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(FileConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	testStore(t, s)
}

func TestFileStore_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(FileConfig{BasePath: dir})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "userProfile", "saved"))

	reopened, err := NewFileStore(FileConfig{BasePath: dir})
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "userProfile")
	require.NoError(t, err)
	assert.Equal(t, "saved", v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "userProfile", entries[0].Name())
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(FileConfig{BasePath: filepath.Join(dir, "kv")})
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../outside", "/etc/passwd"} {
		assert.Error(t, s.Set(context.Background(), key, "x"), "key %q", key)
	}
	_, err = os.Stat(filepath.Join(dir, "outside"))
	assert.True(t, os.IsNotExist(err))
}

func TestNew(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(Config{Driver: "FILE", File: FileConfig{BasePath: t.TempDir()}})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = New(Config{Driver: "etcd"})
	assert.Error(t, err)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	assert.Equal(t, "chatter:userToken", (&RedisStore{prefix: "chatter"}).key("userToken"))
	assert.Equal(t, "userToken", (&RedisStore{}).key("userToken"))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testStore(t, NewRedisStoreWithClient(client, "chatter"))

	// testStore leaves userProfile behind under the prefix
	v, err := mr.Get("chatter:userProfile")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"user_1"}`, v)
	assert.False(t, mr.Exists("userProfile"))
	assert.False(t, mr.Exists("chatter:userToken"))
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := New(Config{Driver: DriverRedis, Redis: RedisConfig{Address: mr.Addr(), Prefix: "app"}})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "userToken", "mock-token-9"))
	assert.True(t, mr.Exists("app:userToken"))

	mr.Del("app:userToken")
	_, err = s.Get(ctx, "userToken")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(RedisConfig{Address: addr})
	assert.Error(t, err)
}

func TestGormStore(t *testing.T) {
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "kv.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	s, err := NewGormStoreWithDB(db)
	require.NoError(t, err)
	testStore(t, s)
}

func TestGormStore_UpsertKeepsOneRow(t *testing.T) {
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "kv.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	s, err := NewGormStoreWithDB(db)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "userToken", "mock-token-1"))
	require.NoError(t, s.Set(ctx, "userToken", "mock-token-2"))

	var count int64
	require.NoError(t, db.Model(&EntryModel{}).Where("entry_key = ?", "userToken").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	v, err := s.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "mock-token-2", v)
}
