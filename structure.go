package geobind

import "iter"

// BandStructure describes the size, block layout and data type of a band
type BandStructure struct {
	SizeX, SizeY           int
	BlockSizeX, BlockSizeY int
	DataType               DataType
}

// DatasetStructure describes a dataset, using the structure of its first band
type DatasetStructure struct {
	BandStructure
	NBands int
}

// Block is a block of a band, at block index BX,BY, covering pixels starting
// at X0,Y0 and spanning W,H pixels. W and H are smaller than the block size for
// the blocks on the right and bottom edges.
type Block struct {
	BX, BY int
	X0, Y0 int
	W, H   int
}

// BlockCount returns the number of blocks in the x and y dimensions
func (is BandStructure) BlockCount() (int, int) {
	if is.BlockSizeX <= 0 || is.BlockSizeY <= 0 {
		return 0, 0
	}
	return (is.SizeX + is.BlockSizeX - 1) / is.BlockSizeX,
		(is.SizeY + is.BlockSizeY - 1) / is.BlockSizeY
}

// BlockLen returns the number of pixels of a full block
func (is BandStructure) BlockLen() int {
	return is.BlockSizeX * is.BlockSizeY
}

// ActualBlockSize returns the number of pixels in the x and y dimensions
// that actually contain data for the given x,y block, or 0,0 if the block
// is out of range
func (is BandStructure) ActualBlockSize(blockX, blockY int) (int, int) {
	nx, ny := is.BlockCount()
	if blockX < 0 || blockY < 0 || blockX >= nx || blockY >= ny {
		return 0, 0
	}
	w, h := is.BlockSizeX, is.BlockSizeY
	if blockX == nx-1 {
		w = is.SizeX - blockX*is.BlockSizeX
	}
	if blockY == ny-1 {
		h = is.SizeY - blockY*is.BlockSizeY
	}
	return w, h
}

// Blocks iterates over all the blocks of the band in scanline order
func (is BandStructure) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		nx, ny := is.BlockCount()
		for by := 0; by < ny; by++ {
			for bx := 0; bx < nx; bx++ {
				w, h := is.ActualBlockSize(bx, by)
				b := Block{BX: bx, BY: by, X0: bx * is.BlockSizeX, Y0: by * is.BlockSizeY, W: w, H: h}
				if !yield(b) {
					return
				}
			}
		}
	}
}
