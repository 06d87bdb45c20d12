package services

import (
	"fmt"
	"sync"
	"testing"

	"fintrack/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore_PutGet(t *testing.T) {
	store := NewSessionStore()

	user := dto.SessionUser{ID: uuid.New().String(), Username: "maria_p", Token: "token-1"}
	store.Put("token-1", user)

	got, ok := store.Get("token-1")
	assert.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, 1, store.Count())
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store := NewSessionStore()

	_, ok := store.Get("never-issued")
	assert.False(t, ok)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()

	store.Put("token-1", dto.SessionUser{Username: "maria_p", Token: "token-1"})
	store.Delete("token-1")

	_, ok := store.Get("token-1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Count())
}

func TestSessionStore_DeleteUnknownIsNoop(t *testing.T) {
	store := NewSessionStore()

	store.Put("token-1", dto.SessionUser{Username: "maria_p", Token: "token-1"})
	store.Delete("never-issued")

	assert.Equal(t, 1, store.Count())
}

func TestSessionStore_OverwriteSameToken(t *testing.T) {
	store := NewSessionStore()

	store.Put("token-1", dto.SessionUser{Username: "maria_p", Token: "token-1"})
	store.Put("token-1", dto.SessionUser{Username: "casey", Token: "token-1"})

	got, ok := store.Get("token-1")
	assert.True(t, ok)
	assert.Equal(t, "casey", got.Username)
	assert.Equal(t, 1, store.Count())
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", n)
			store.Put(token, dto.SessionUser{Username: "maria_p", Token: token})
			store.Get(token)
			if n%2 == 0 {
				store.Delete(token)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, store.Count())
}
