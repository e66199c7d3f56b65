package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := newSessionCache(2, nil)
	a := &session{id: uuid.New()}
	b := &session{id: uuid.New()}
	d := &session{id: uuid.New()}

	c.add(a)
	c.add(b)
	_, ok := c.get(a.id) // a becomes most recent
	assert.True(t, ok)

	c.add(d)
	assert.Equal(t, 2, c.len())

	_, ok = c.get(b.id)
	assert.False(t, ok, "b was least recently used")
	_, ok = c.get(a.id)
	assert.True(t, ok)
	_, ok = c.get(d.id)
	assert.True(t, ok)
}

func TestSessionCache_AddKeepsExisting(t *testing.T) {
	t.Parallel()

	c := newSessionCache(0, nil)
	id := uuid.New()
	first := &session{id: id}
	second := &session{id: id}

	assert.Same(t, first, c.add(first))
	assert.Same(t, first, c.add(second))
	assert.Equal(t, 1, c.len())

	c.remove(id)
	assert.Equal(t, 0, c.len())
	c.remove(id)
}

func TestSessionCache_ReportsEvictions(t *testing.T) {
	t.Parallel()

	var evicted []uuid.UUID
	c := newSessionCache(1, func(id uuid.UUID) { evicted = append(evicted, id) })
	a := &session{id: uuid.New()}
	b := &session{id: uuid.New()}

	c.add(a)
	c.add(b)

	assert.Equal(t, []uuid.UUID{a.id}, evicted)
	_, ok := c.get(a.id)
	assert.False(t, ok)
	got, ok := c.get(b.id)
	assert.True(t, ok)
	assert.Same(t, b, got)
}

func TestSessionCache_AddRefreshesExisting(t *testing.T) {
	t.Parallel()

	c := newSessionCache(2, nil)
	a := &session{id: uuid.New()}
	b := &session{id: uuid.New()}
	d := &session{id: uuid.New()}

	c.add(a)
	c.add(b)
	c.add(&session{id: a.id}) // a becomes most recent without being replaced
	c.add(d)

	got, ok := c.get(a.id)
	assert.True(t, ok)
	assert.Same(t, a, got)
	_, ok = c.get(b.id)
	assert.False(t, ok)
}
