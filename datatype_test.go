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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypes(t *testing.T) {
	for _, tc := range []struct {
		dt      DataType
		name    string
		size    int
		complex bool
	}{
		{Byte, "Byte", 1, false},
		{UInt16, "UInt16", 2, false},
		{Int16, "Int16", 2, false},
		{UInt32, "UInt32", 4, false},
		{Int32, "Int32", 4, false},
		{Float32, "Float32", 4, false},
		{Float64, "Float64", 8, false},
		{CInt16, "CInt16", 4, true},
		{CFloat64, "CFloat64", 16, true},
	} {
		assert.Equal(t, tc.name, tc.dt.String())
		assert.Equal(t, tc.size, tc.dt.Size(), tc.name)
		assert.Equal(t, tc.size*8, tc.dt.Bits(), tc.name)
		assert.Equal(t, tc.complex, tc.dt.IsComplex(), tc.name)
		assert.Equal(t, tc.dt, DataTypeByName(tc.name))
	}
	assert.Equal(t, Unknown, DataTypeByName("bogus"))

	assert.Equal(t, Int16, DataTypeUnion(Byte, Int16))
	assert.Equal(t, Float32, DataTypeUnion(Byte, Float32))
	assert.Equal(t, Float64, DataTypeUnion(Float64, Int32))
}

func TestColorInterp(t *testing.T) {
	for _, ci := range []ColorInterp{CIGray, CIPalette, CIRed, CIAlpha, CIHue, CIBlack, CICr} {
		assert.Equal(t, ci, ColorInterpByName(ci.Name()))
	}
	assert.Equal(t, "Red", CIRed.Name())
	assert.Equal(t, CIRed, ColorInterpByName("red"))
	assert.Equal(t, CIUndefined, ColorInterpByName("bogus"))
}
