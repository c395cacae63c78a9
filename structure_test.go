package geobind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandStructureBlocks(t *testing.T) {
	st := BandStructure{SizeX: 10, SizeY: 5, BlockSizeX: 4, BlockSizeY: 2, DataType: Byte}
	nx, ny := st.BlockCount()
	assert.Equal(t, 3, nx)
	assert.Equal(t, 3, ny)
	assert.Equal(t, 8, st.BlockLen())

	tc := func(bx, by, ew, eh int) {
		t.Helper()
		w, h := st.ActualBlockSize(bx, by)
		assert.Equal(t, ew, w)
		assert.Equal(t, eh, h)
	}
	tc(0, 0, 4, 2)
	tc(2, 0, 2, 2)
	tc(0, 2, 4, 1)
	tc(2, 2, 2, 1)
	tc(3, 0, 0, 0)
	tc(-1, 0, 0, 0)

	var blocks []Block
	for b := range st.Blocks() {
		blocks = append(blocks, b)
	}
	assert.Len(t, blocks, 9)
	assert.Equal(t, Block{BX: 0, BY: 0, X0: 0, Y0: 0, W: 4, H: 2}, blocks[0])
	assert.Equal(t, Block{BX: 1, BY: 0, X0: 4, Y0: 0, W: 4, H: 2}, blocks[1])
	assert.Equal(t, Block{BX: 2, BY: 2, X0: 8, Y0: 4, W: 2, H: 1}, blocks[8])

	n := 0
	for range st.Blocks() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	empty := BandStructure{SizeX: 10, SizeY: 10}
	nx, ny = empty.BlockCount()
	assert.Equal(t, 0, nx*ny)
	for range empty.Blocks() {
		t.Error("no blocks expected")
	}
}
