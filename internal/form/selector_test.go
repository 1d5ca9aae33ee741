package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingSelector(t *testing.T) {
	s := &RecordingSelector{}
	require.NoError(t, s.Select(context.Background(), 0, 2))
	require.NoError(t, s.Select(context.Background(), 3, 1))

	picks := s.Picks()
	assert.Equal(t, []Pick{{Question: 0, Option: 2}, {Question: 3, Option: 1}}, picks)

	picks[0].Option = 9
	assert.Equal(t, 2, s.Picks()[0].Option)
}
