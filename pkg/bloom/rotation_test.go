package bloom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePolicies(t *testing.T) {
	q := NewQueue(ConsumeOnce)
	q.Push("a", "b")
	var got []string
	for {
		s, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, s)
	}
	assert.Equal(t, []string{"a", "b"}, got)

	q = NewQueue(Loop)
	q.Push("a", "b")
	got = nil
	for i := 0; i < 5; i++ {
		s, ok := q.Pop()
		require.True(t, ok)
		got = append(got, s)
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, got)
	assert.Equal(t, 2, q.Len())
}

func TestRotationInterval(t *testing.T) {
	q := NewQueue(ConsumeOnce)
	r := NewRotation(q, 30*time.Second, epoch)

	// Empty queue never fires.
	_, ok := r.Tick(epoch.Add(time.Hour))
	assert.False(t, ok)

	q.Push("one", "two")
	_, ok = r.Tick(epoch.Add(29 * time.Second))
	assert.False(t, ok)

	title, ok := r.Tick(epoch.Add(30 * time.Second))
	require.True(t, ok)
	assert.Equal(t, "one", title)

	// Timer restarted at 30s.
	_, ok = r.Tick(epoch.Add(59 * time.Second))
	assert.False(t, ok)
	title, ok = r.Tick(epoch.Add(60 * time.Second))
	require.True(t, ok)
	assert.Equal(t, "two", title)
}

func TestRotationTake(t *testing.T) {
	q := NewQueue(ConsumeOnce)
	q.Push("first", "second")
	r := NewRotation(q, 10*time.Second, epoch)

	title, ok := r.Take(epoch.Add(8 * time.Second))
	require.True(t, ok)
	assert.Equal(t, "first", title)

	_, ok = r.Tick(epoch.Add(10 * time.Second))
	assert.False(t, ok, "Take restarts the timer")
	_, ok = r.Tick(epoch.Add(18 * time.Second))
	assert.True(t, ok)
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePolicy("loop")
	require.NoError(t, err)
	assert.Equal(t, Loop, p)
	_, err = ParsePolicy("forever")
	assert.Error(t, err)

	d, err := ParseDisplay("single")
	require.NoError(t, err)
	assert.Equal(t, Single, d)
	_, err = ParseDisplay("many")
	assert.Error(t, err)

	s, err := ParseShape("box")
	require.NoError(t, err)
	assert.Equal(t, ShapeBox, s)
	assert.Equal(t, "circle", ShapeCircle.String())
}
