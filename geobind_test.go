// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package geobind

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterAll()
}

type errChecker struct {
	errs int
}

func (e *errChecker) ErrorHandler(ec ErrorCategory, code int, message string) error {
	if ec >= CE_Warning {
		e.errs++
		return errors.New(message)
	}
	return nil
}

func eh() *errChecker {
	return &errChecker{}
}

func tempfile(t *testing.T, suffix string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*"+suffix)
	require.NoError(t, err)
	f.Close()
	os.Remove(f.Name())
	return f.Name()
}

// memRaster creates a nBands in-memory raster, closed when the test ends
func memRaster(t *testing.T, nBands int, dtype DataType, width, height int, opts ...DatasetCreateOption) *Dataset {
	t.Helper()
	ds, err := Create(Memory, "", nBands, dtype, width, height, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestBufferType(t *testing.T) {
	tc := func(buf interface{}, exp DataType, size int) {
		t.Helper()
		assert.Equal(t, exp, bufferType(buf))
		assert.Equal(t, size, bufferType(buf).Size())
		assert.Equal(t, 10, bufferLen(buf))
		_ = cBuffer(buf, 10)
		assert.Panics(t, func() { cBuffer(buf, 11) })
	}
	tc(make([]byte, 10), Byte, 1)
	tc(make([]int8, 10), Int8, 1)
	tc(make([]int16, 10), Int16, 2)
	tc(make([]uint16, 10), UInt16, 2)
	tc(make([]int32, 10), Int32, 4)
	tc(make([]uint32, 10), UInt32, 4)
	tc(make([]float32, 10), Float32, 4)
	tc(make([]float64, 10), Float64, 8)
	tc(make([]complex64, 10), CFloat32, 8)
	tc(make([]complex128, 10), CFloat64, 16)

	assert.Equal(t, Unknown, bufferType("stringtest"))
	assert.Equal(t, 0, bufferLen("stringtest"))
}

func TestCheckBuffer(t *testing.T) {
	dt, err := checkBuffer(make([]uint16, 4), 4)
	assert.NoError(t, err)
	assert.Equal(t, UInt16, dt)

	_, err = checkBuffer(make([]uint16, 3), 4)
	assert.ErrorIs(t, err, ErrIllegalArg)
	_, err = checkBuffer([]byte{}, 0)
	assert.ErrorIs(t, err, ErrIllegalArg)
	_, err = checkBuffer([]string{"a"}, 1)
	assert.ErrorIs(t, err, ErrIllegalArg)
}

func TestVersion(t *testing.T) {
	v := Version()
	assert.GreaterOrEqual(t, v.Major(), 3)
	assert.True(t, CheckMinVersion(v.Major(), v.Minor(), v.Revision()))
	assert.False(t, CheckMinVersion(v.Major()+1, 0, 0))
	assert.False(t, CheckMinVersion(v.Major(), v.Minor()+1, 0))
	assert.NotPanics(t, func() { AssertMinVersion(3, 0, 0) })
	assert.Panics(t, func() { AssertMinVersion(99, 0, 0) })

	lv := LibVersion(3060200)
	assert.Equal(t, 3, lv.Major())
	assert.Equal(t, 6, lv.Minor())
	assert.Equal(t, 2, lv.Revision())
	assert.Equal(t, "3.6.2", lv.String())
}
