package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotRecorder_WriteHistogramProducesPNG(t *testing.T) {
	r := NewDotRecorder()
	for i := 0; i < 50; i++ {
		r.Observe(uint16(172 + i%20))
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteHistogram(&buf, 320, 240))
	assert.Greater(t, buf.Len(), 0)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}
