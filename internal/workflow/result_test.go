package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := Ok([]string{"Docker"})
	value, has := ok.Value()
	assert.True(t, has)
	assert.Equal(t, []string{"Docker"}, value)
	assert.NoError(t, ok.Err())

	failed := Fail[[]string](errors.New("sample unavailable"))
	value, has = failed.Value()
	assert.False(t, has)
	assert.Nil(t, value)
	assert.EqualError(t, failed.Err(), "sample unavailable")
}
