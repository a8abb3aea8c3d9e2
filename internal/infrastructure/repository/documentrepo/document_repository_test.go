package documentrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[]", VectorLiteral(nil))
	assert.Equal(t, "[0.1,-2,3.5]", VectorLiteral([]float32{0.1, -2, 3.5}))
}
