package runtime_test

import (
	"testing"

	"github.com/aretw0/mazewalk/internal/runtime"
	"github.com/stretchr/testify/assert"
)

func TestHidePredicates(t *testing.T) {
	fresh := runtime.Progress{}
	late := runtime.Progress{Seconds: 30}
	done := runtime.Progress{EndReached: true}

	assert.False(t, runtime.NeverHide(late))

	after := runtime.HideAfter(10)
	assert.False(t, after(fresh))
	assert.True(t, after(late))

	assert.False(t, runtime.HideOnEndReached(fresh))
	assert.True(t, runtime.HideOnEndReached(done))

	either := runtime.AnyOf(nil, runtime.HideOnEndReached, runtime.HideAfter(10))
	assert.False(t, either(fresh))
	assert.True(t, either(late))
	assert.True(t, either(done))
	assert.False(t, runtime.AnyOf()(late))
}
