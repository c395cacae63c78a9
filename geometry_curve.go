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

//#include "geobind.h"
import "C"
import (
	"fmt"
	"unsafe"
)

// X returns the x coordinate of a point geometry
func (g *Geometry) X() float64 {
	return float64(C.OGR_G_GetX(g.handle, 0))
}

// Y returns the y coordinate of a point geometry
func (g *Geometry) Y() float64 {
	return float64(C.OGR_G_GetY(g.handle, 0))
}

// Z returns the z coordinate of a point geometry, or 0
func (g *Geometry) Z() float64 {
	return float64(C.OGR_G_GetZ(g.handle, 0))
}

// Point returns the coordinates of a point geometry, or of the first vertex of a curve
func (g *Geometry) Point() (x, y, z float64) {
	p, _ := g.PointAt(0)
	return p[0], p[1], p[2]
}

// SetPoint sets the coordinates of a point geometry, or of the first vertex of a curve
func (g *Geometry) SetPoint(x, y float64) {
	C.OGR_G_SetPoint_2D(g.handle, 0, C.double(x), C.double(y))
}

// SetPoint3D sets the coordinates of a point geometry, or of the first vertex of a curve
func (g *Geometry) SetPoint3D(x, y, z float64) {
	C.OGR_G_SetPoint(g.handle, 0, C.double(x), C.double(y), C.double(z))
}

// AddPoint appends a vertex to a curve. On a point geometry, it sets its coordinates.
func (g *Geometry) AddPoint(x, y float64) {
	C.OGR_G_AddPoint_2D(g.handle, C.double(x), C.double(y))
}

// AddPoint3D appends a 3D vertex to a curve. On a point geometry, it sets its coordinates.
func (g *Geometry) AddPoint3D(x, y, z float64) {
	C.OGR_G_AddPoint(g.handle, C.double(x), C.double(y), C.double(z))
}

// PointAt returns the i'th vertex of a curve as x,y,z. ok is false if i is out of range.
func (g *Geometry) PointAt(i int) (p [3]float64, ok bool) {
	if i < 0 || i >= g.PointCount() {
		return p, false
	}
	var x, y, z C.double
	C.OGR_G_GetPoint(g.handle, C.int(i), &x, &y, &z)
	return [3]float64{float64(x), float64(y), float64(z)}, true
}

// XAt returns the x coordinate of the i'th vertex of a curve
func (g *Geometry) XAt(i int) (float64, bool) {
	p, ok := g.PointAt(i)
	return p[0], ok
}

// YAt returns the y coordinate of the i'th vertex of a curve
func (g *Geometry) YAt(i int) (float64, bool) {
	p, ok := g.PointAt(i)
	return p[1], ok
}

// ZAt returns the z coordinate of the i'th vertex of a curve
func (g *Geometry) ZAt(i int) (float64, bool) {
	p, ok := g.PointAt(i)
	return p[2], ok
}

// SetPointAt sets the i'th vertex of a curve. i must be between 0 and PointCount()-1,
// use SetPointCount or AddPoint to grow the curve.
func (g *Geometry) SetPointAt(i int, x, y float64) error {
	if i < 0 || i >= g.PointCount() {
		return fmt.Errorf("point index %d out of range: %w", i, ErrIllegalArg)
	}
	C.OGR_G_SetPoint_2D(g.handle, C.int(i), C.double(x), C.double(y))
	return nil
}

// SetPointAt3D sets the i'th vertex of a curve, making it 3D
func (g *Geometry) SetPointAt3D(i int, x, y, z float64) error {
	if i < 0 || i >= g.PointCount() {
		return fmt.Errorf("point index %d out of range: %w", i, ErrIllegalArg)
	}
	C.OGR_G_SetPoint(g.handle, C.int(i), C.double(x), C.double(y), C.double(z))
	return nil
}

// SetPointCount grows or truncates a curve to n vertices. New vertices are set to 0,0.
func (g *Geometry) SetPointCount(n int) error {
	if n < 0 {
		return fmt.Errorf("negative point count %d: %w", n, ErrIllegalArg)
	}
	C.OGR_G_SetPointCount(g.handle, C.int(n))
	return nil
}

// Points returns all the vertices of a point or curve as x,y,z triplets
func (g *Geometry) Points() [][3]float64 {
	n := g.PointCount()
	if n == 0 {
		return nil
	}
	pts := make([][3]float64, n)
	stride := C.int(unsafe.Sizeof(pts[0]))
	C.OGR_G_GetPoints(g.handle,
		unsafe.Pointer(&pts[0][0]), stride,
		unsafe.Pointer(&pts[0][1]), stride,
		unsafe.Pointer(&pts[0][2]), stride)
	if g.CoordinateDimension() < 3 {
		for i := range pts {
			pts[i][2] = 0
		}
	}
	return pts
}

// StartPoint returns the first vertex of a curve
func (g *Geometry) StartPoint() ([3]float64, bool) {
	return g.PointAt(0)
}

// EndPoint returns the last vertex of a curve
func (g *Geometry) EndPoint() ([3]float64, bool) {
	return g.PointAt(g.PointCount() - 1)
}

// IsClosed returns true if the curve has at least two vertices and its first and
// last vertices are equal
func (g *Geometry) IsClosed() bool {
	if g.PointCount() < 2 {
		return false
	}
	s, _ := g.StartPoint()
	e, _ := g.EndPoint()
	return s == e
}

// AddGeometry adds a copy of subGeom to a polygon or collection
func (g *Geometry) AddGeometry(subGeom *Geometry, opts ...GeometryOption) error {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindAddGeometry(cgc.cPointer(), g.handle, subGeom.handle, 0)
	return cgc.close()
}

// AddGeometryDirectly adds subGeom to a polygon or collection, which takes ownership
// of it. On success, subGeom becomes borrowed from g and must not be used after g
// is released.
func (g *Geometry) AddGeometryDirectly(subGeom *Geometry, opts ...GeometryOption) error {
	if !subGeom.isOwned {
		return fmt.Errorf("cannot transfer a borrowed geometry: %w", ErrIllegalArg)
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindAddGeometry(cgc.cPointer(), g.handle, subGeom.handle, 1)
	if err := cgc.close(); err != nil {
		return err
	}
	subGeom.isOwned = false
	return nil
}

// SubGeometry returns the i'th sub-geometry of a polygon or collection. The returned
// geometry is borrowed from g.
func (g *Geometry) SubGeometry(i int) (*Geometry, bool) {
	if i < 0 || i >= g.GeometryCount() {
		return nil, false
	}
	hndl := C.OGR_G_GetGeometryRef(g.handle, C.int(i))
	if hndl == nil {
		return nil, false
	}
	return &Geometry{isOwned: false, handle: hndl}, true
}

// RemoveGeometry removes the i'th sub-geometry of a polygon or collection. If del is
// true, it is destroyed and nil is returned. Otherwise it is returned to the caller,
// which becomes its owner.
func (g *Geometry) RemoveGeometry(i int, del bool, opts ...GeometryOption) (*Geometry, error) {
	if i < 0 || i >= g.GeometryCount() {
		return nil, fmt.Errorf("geometry index %d out of range: %w", i, ErrIllegalArg)
	}
	var removed C.OGRGeometryH
	cdel := C.int(1)
	if !del {
		cdel = 0
		removed = C.OGR_G_GetGeometryRef(g.handle, C.int(i))
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindRemoveGeometry(cgc.cPointer(), g.handle, C.int(i), cdel)
	if err := cgc.close(); err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, nil
	}
	return newGeometry(removed), nil
}

// PolygonFromEdges builds a polygon from a collection of linestrings sharing their
// end points. Points closer than tolerance are considered equal. If autoClose is true,
// unclosed rings are closed. If bestEffort is true, GEOS is used to build the polygon
// from arbitrarily ordered edges.
func (g *Geometry) PolygonFromEdges(tolerance float64, autoClose, bestEffort bool, opts ...GeometryOption) (*Geometry, error) {
	cauto, cbest := C.int(0), C.int(0)
	if autoClose {
		cauto = 1
	}
	if bestEffort {
		cbest = 1
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindPolygonFromEdges(cgc.cPointer(), g.handle, cbest, cauto, C.double(tolerance))
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}
