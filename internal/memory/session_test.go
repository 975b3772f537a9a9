package memory

import (
	"fmt"
	"sync"
	"testing"

	"anvi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_AddAndHistory(t *testing.T) {
	cache := NewSessionCache(6)

	cache.Add("s1", model.RoleUser, "first")
	cache.Add("s1", model.RoleAssistant, "second")

	history := cache.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content, "chronological order, oldest first")
	assert.Equal(t, "second", history[1].Content)
	assert.Equal(t, 2, cache.Size("s1"))
}

func TestSessionCache_TrimsToLimit(t *testing.T) {
	cache := NewSessionCache(6)

	for i := 0; i < 10; i++ {
		cache.Add("s1", model.RoleUser, fmt.Sprintf("msg-%d", i))
	}

	history := cache.History("s1")
	require.Len(t, history, 6)
	assert.Equal(t, "msg-4", history[0].Content, "oldest turns dropped")
	assert.Equal(t, "msg-9", history[5].Content)
}

func TestSessionCache_SessionsAreIndependent(t *testing.T) {
	cache := NewSessionCache(6)

	cache.Add("s1", model.RoleUser, "hello from s1")
	cache.Add("s2", model.RoleUser, "hello from s2")

	assert.Equal(t, 1, cache.Size("s1"))
	assert.Equal(t, 1, cache.Size("s2"))
	assert.Equal(t, "hello from s1", cache.History("s1")[0].Content)
}

func TestSessionCache_Formatted(t *testing.T) {
	cache := NewSessionCache(6)

	assert.Equal(t, "No previous conversation.", cache.Formatted("empty"))

	cache.Add("s1", model.RoleUser, "any pools?")
	cache.Add("s1", model.RoleAssistant, "Yes, two options.")
	assert.Equal(t, "user: any pools?\nassistant: Yes, two options.", cache.Formatted("s1"))
}

func TestSessionCache_Clear(t *testing.T) {
	cache := NewSessionCache(6)

	cache.Add("s1", model.RoleUser, "hello")
	cache.Clear("s1")

	assert.Zero(t, cache.Size("s1"))
	assert.Empty(t, cache.History("s1"))
}

func TestSessionCache_ConcurrentAdds(t *testing.T) {
	cache := NewSessionCache(6)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", n%5)
			cache.Add(session, model.RoleUser, fmt.Sprintf("msg-%d", n))
		}(i)
	}
	wg.Wait()

	// every session ends bounded and uncorrupted
	for i := 0; i < 5; i++ {
		session := fmt.Sprintf("s%d", i)
		size := cache.Size(session)
		assert.LessOrEqual(t, size, 6)
		assert.Equal(t, size, len(cache.History(session)))
	}
}
