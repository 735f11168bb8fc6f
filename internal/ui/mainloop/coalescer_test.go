package mainloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescer_BurstRunsLatestOnce(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop.Post)

	var got []string
	for _, scheme := range []string{"dark", "light", "dark"} {
		s := scheme
		c.Post("ambient", func() { got = append(got, s) })
	}

	assert.True(t, c.Pending("ambient"))
	assert.Equal(t, 1, loop.Pending())
	assert.Equal(t, uint64(2), c.Merged())

	loop.RunPending()
	assert.Equal(t, []string{"dark"}, got)
	assert.False(t, c.Pending("ambient"))
}

func TestCoalescer_KeysAreIndependent(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop.Post)

	ran := map[string]int{}
	c.Post("ambient", func() { ran["ambient"]++ })
	c.Post("store", func() { ran["store"]++ })
	loop.RunPending()

	assert.Equal(t, map[string]int{"ambient": 1, "store": 1}, ran)
}

func TestCoalescer_PostDuringRunQueuesNextTick(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop.Post)

	runs := 0
	var again func()
	again = func() {
		runs++
		if runs == 1 {
			c.Post("ambient", again)
		}
	}
	c.Post("ambient", again)

	loop.RunPending()
	assert.Equal(t, 1, runs)
	require.True(t, c.Pending("ambient"))
	loop.RunPending()
	assert.Equal(t, 2, runs)
}

func TestCoalescer_DestroyDropsQueuedWork(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop.Post)

	ran := false
	c.Post("ambient", func() { ran = true })
	c.Destroy()
	loop.Drain(2)
	assert.False(t, ran)

	c.Post("ambient", func() { ran = true })
	assert.Equal(t, 0, loop.Pending())
	assert.False(t, c.Pending("ambient"))
}

func TestNewCoalescer_NilPostPanics(t *testing.T) {
	assert.Panics(t, func() { NewCoalescer(nil) })
}
