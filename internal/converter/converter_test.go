package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisabled(t *testing.T) {
	for _, kind := range []string{"", "none", "NONE"} {
		c, err := New(kind)
		require.NoError(t, err)
		assert.Nil(t, c)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("jianfan")
	assert.ErrorContains(t, err, `unknown converter "jianfan"`)
}

func TestOpenCC(t *testing.T) {
	c, err := NewOpenCC()
	if err != nil {
		t.Skipf("OpenCC dictionaries not available: %v", err)
	}
	assert.Equal(t, "列夫·托爾斯托伊", c.SimToTrad("列夫·托尔斯托伊"))
	assert.Equal(t, "伊萬", c.SimToTrad("伊万"))
}
