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
	"io"
	"strconv"
	"unsafe"
)

// Geometry wraps a OGRGeometryH.
//
// Geometries returned by constructors and by operations producing a new geometry
// are owned and must be released with Close. Geometries returned by Feature.Geometry,
// Geometry.SubGeometry and the likes are borrowed from their parent: Close only
// detaches them, and they must not be used once the parent has been modified or
// released.
type Geometry struct {
	isOwned bool
	handle  C.OGRGeometryH
}

func newGeometry(hndl C.OGRGeometryH) *Geometry {
	return &Geometry{isOwned: true, handle: hndl}
}

func srHandle(sr *SpatialRef) C.OGRSpatialReferenceH {
	if sr == nil {
		return nil
	}
	return sr.handle
}

func geometryErrorHandler(opts []GeometryOption) ErrorHandler {
	gopts := geometryOpts{}
	for _, o := range opts {
		o.setGeometryOpt(&gopts)
	}
	return gopts.errorHandler
}

// NewGeometry creates an empty geometry of the given type
func NewGeometry(gtype GeometryType) (*Geometry, error) {
	hndl := C.OGR_G_CreateGeometry(C.OGRwkbGeometryType(gtype))
	if hndl == nil {
		return nil, fmt.Errorf("cannot create geometry of type %s: %w", gtype, ErrUnsupportedGeometryType)
	}
	return newGeometry(hndl), nil
}

// NewGeometryFromWKT creates a new Geometry from its WKT representation. sr may be nil.
func NewGeometryFromWKT(wkt string, sr *SpatialRef, opts ...GeometryOption) (*Geometry, error) {
	cwkt := C.CString(wkt)
	defer C.free(unsafe.Pointer(cwkt))
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindCreateGeometryFromWKT(cgc.cPointer(), cwkt, srHandle(sr))
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// NewGeometryFromWKB creates a new Geometry from its WKB representation. sr may be nil.
func NewGeometryFromWKB(wkb []byte, sr *SpatialRef, opts ...GeometryOption) (*Geometry, error) {
	if len(wkb) == 0 {
		return nil, fmt.Errorf("empty wkb: %w", ErrNotEnoughData)
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindCreateGeometryFromWKB(cgc.cPointer(), unsafe.Pointer(&wkb[0]), C.int(len(wkb)), srHandle(sr))
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// NewGeometryFromGML creates a new Geometry from a GML fragment
func NewGeometryFromGML(gml string, opts ...GeometryOption) (*Geometry, error) {
	cgml := C.CString(gml)
	defer C.free(unsafe.Pointer(cgml))
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindCreateGeometryFromGML(cgc.cPointer(), cgml)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// NewGeometryFromGeoJSON creates a new Geometry from a GeoJSON geometry object
func NewGeometryFromGeoJSON(geoJSON string, opts ...GeometryOption) (*Geometry, error) {
	cjs := C.CString(geoJSON)
	defer C.free(unsafe.Pointer(cjs))
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindCreateGeometryFromGeoJSON(cgc.cPointer(), cjs)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// Close may reclaim memory from geometry. Borrowed geometries are only detached.
func (g *Geometry) Close() {
	if g.handle == nil {
		return
	}
	if g.isOwned {
		C.OGR_G_DestroyGeometry(g.handle)
	}
	g.handle = nil
}

// Clone returns an owned deep copy of the geometry
func (g *Geometry) Clone() *Geometry {
	return newGeometry(C.OGR_G_Clone(g.handle))
}

// Empty clears the geometry's contents, leaving it empty but of the same type
func (g *Geometry) Empty() {
	C.OGR_G_Empty(g.handle)
}

// Dimension returns 0 for points, 1 for curves and 2 for surfaces
func (g *Geometry) Dimension() int {
	return int(C.OGR_G_GetDimension(g.handle))
}

// CoordinateDimension returns 2 or 3
func (g *Geometry) CoordinateDimension() int {
	return int(C.OGR_G_GetCoordinateDimension(g.handle))
}

// SetCoordinateDimension forces the geometry to 2 or 3 dimensions
func (g *Geometry) SetCoordinateDimension(dim int) error {
	if dim != 2 && dim != 3 {
		return fmt.Errorf("invalid coordinate dimension %d: %w", dim, ErrIllegalArg)
	}
	C.OGR_G_SetCoordinateDimension(g.handle, C.int(dim))
	return nil
}

// Envelope returns the geometry's 2D bounding box
func (g *Geometry) Envelope() Envelope {
	var env C.OGREnvelope
	C.OGR_G_GetEnvelope(g.handle, &env)
	return Envelope{
		MinX: float64(env.MinX), MaxX: float64(env.MaxX),
		MinY: float64(env.MinY), MaxY: float64(env.MaxY),
	}
}

// Envelope3D returns the geometry's 3D bounding box
func (g *Geometry) Envelope3D() Envelope {
	var env C.OGREnvelope3D
	C.OGR_G_GetEnvelope3D(g.handle, &env)
	return Envelope{
		MinX: float64(env.MinX), MaxX: float64(env.MaxX),
		MinY: float64(env.MinY), MaxY: float64(env.MaxY),
		MinZ: float64(env.MinZ), MaxZ: float64(env.MaxZ),
		Is3D: true,
	}
}

// Type returns the geometry's type
func (g *Geometry) Type() GeometryType {
	return GeometryType(C.OGR_G_GetGeometryType(g.handle))
}

// Name fetch WKT name for geometry type.
func (g *Geometry) Name() string {
	return C.GoString(C.OGR_G_GetGeometryName(g.handle))
}

// GeometryCount returns the number of direct sub-geometries (rings for polygons,
// members for collections)
func (g *Geometry) GeometryCount() int {
	return int(C.OGR_G_GetGeometryCount(g.handle))
}

// PointCount returns the number of vertices of a point or curve, or 0
func (g *Geometry) PointCount() int {
	return int(C.OGR_G_GetPointCount(g.handle))
}

// Area computes the area for geometries of type LinearRing, Polygon or MultiPolygon (returns zero for other types).
// The area is in square units of the spatial reference system in use.
func (g *Geometry) Area() float64 {
	return float64(C.OGR_G_Area(g.handle))
}

// Length computes the length of curves and multicurves (returns zero for other types)
func (g *Geometry) Length() float64 {
	return float64(C.OGR_G_Length(g.handle))
}

// FlattenTo2D drops the Z component of all the geometry's vertices
func (g *Geometry) FlattenTo2D() {
	C.OGR_G_FlattenTo2D(g.handle)
}

// CloseRings closes any unclosed ring of the geometry by appending its first point
func (g *Geometry) CloseRings() {
	C.OGR_G_CloseRings(g.handle)
}

// IsEmpty returns true if the geometry has no points
func (g *Geometry) IsEmpty() bool {
	return C.OGR_G_IsEmpty(g.handle) != 0
}

// IsValid returns true if the geometry is topologically valid
func (g *Geometry) IsValid() bool {
	return C.OGR_G_IsValid(g.handle) != 0
}

// IsSimple returns true if the geometry has no anomalous points such as self intersections
func (g *Geometry) IsSimple() bool {
	return C.OGR_G_IsSimple(g.handle) != 0
}

// IsRing returns true if the geometry is a closed simple curve
func (g *Geometry) IsRing() bool {
	return C.OGR_G_IsRing(g.handle) != 0
}

func (g *Geometry) predicate(op C.int, other *Geometry, opts []GeometryOption) (bool, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	ret := C.geobindGeometryPredicate(cgc.cPointer(), op, g.handle, other.handle)
	if err := cgc.close(); err != nil {
		return false, err
	}
	return ret != 0, nil
}

// Intersects determines whether two geometries intersect.
func (g *Geometry) Intersects(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_INTERSECTS, other, opts)
}

// Equals determines whether two geometries are topologically equal
func (g *Geometry) Equals(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_EQUALS, other, opts)
}

// Disjoint determines whether two geometries have no point in common
func (g *Geometry) Disjoint(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_DISJOINT, other, opts)
}

// Touches determines whether two geometries only share boundary points
func (g *Geometry) Touches(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_TOUCHES, other, opts)
}

// Crosses determines whether two geometries cross
func (g *Geometry) Crosses(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_CROSSES, other, opts)
}

// Within determines whether g is inside other
func (g *Geometry) Within(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_WITHIN, other, opts)
}

// Contains determines whether g contains other
func (g *Geometry) Contains(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_CONTAINS, other, opts)
}

// Overlaps determines whether two geometries overlap
func (g *Geometry) Overlaps(other *Geometry, opts ...GeometryOption) (bool, error) {
	return g.predicate(C.GEOBIND_PRED_OVERLAPS, other, opts)
}

func (g *Geometry) binaryOp(op C.int, other *Geometry, opts []GeometryOption) (*Geometry, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindGeometryBinaryOp(cgc.cPointer(), op, g.handle, other.handle)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// Intersection generates a new geometry which is the region of intersection of the two geometries operated on.
func (g *Geometry) Intersection(other *Geometry, opts ...GeometryOption) (*Geometry, error) {
	return g.binaryOp(C.GEOBIND_OP_INTERSECTION, other, opts)
}

// Union generates a new geometry which is the region of union of the two geometries operated on.
func (g *Geometry) Union(other *Geometry, opts ...GeometryOption) (*Geometry, error) {
	return g.binaryOp(C.GEOBIND_OP_UNION, other, opts)
}

// Difference generates a new geometry which is the region of this geometry with the region of the other geometry removed.
func (g *Geometry) Difference(other *Geometry, opts ...GeometryOption) (*Geometry, error) {
	return g.binaryOp(C.GEOBIND_OP_DIFFERENCE, other, opts)
}

// SymDifference generates a new geometry which is the union of both geometries
// minus their intersection
func (g *Geometry) SymDifference(other *Geometry, opts ...GeometryOption) (*Geometry, error) {
	return g.binaryOp(C.GEOBIND_OP_SYMDIFFERENCE, other, opts)
}

func (g *Geometry) unaryOp(op C.int, opts []GeometryOption) (*Geometry, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindGeometryUnaryOp(cgc.cPointer(), op, g.handle)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// Boundary returns the geometry's boundary
func (g *Geometry) Boundary(opts ...GeometryOption) (*Geometry, error) {
	return g.unaryOp(C.GEOBIND_OP_BOUNDARY, opts)
}

// ConvexHull returns the smallest convex polygon containing the geometry
func (g *Geometry) ConvexHull(opts ...GeometryOption) (*Geometry, error) {
	return g.unaryOp(C.GEOBIND_OP_CONVEXHULL, opts)
}

// Polygonize builds polygons from a collection of noded linestrings
func (g *Geometry) Polygonize(opts ...GeometryOption) (*Geometry, error) {
	return g.unaryOp(C.GEOBIND_OP_POLYGONIZE, opts)
}

// Centroid returns a point at the geometry's center of mass
func (g *Geometry) Centroid(opts ...GeometryOption) (*Geometry, error) {
	return g.unaryOp(C.GEOBIND_OP_CENTROID, opts)
}

// Distance returns the shortest distance between the two geometries
func (g *Geometry) Distance(other *Geometry, opts ...GeometryOption) (float64, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	d := C.geobindDistance(cgc.cPointer(), g.handle, other.handle)
	if err := cgc.close(); err != nil {
		return 0, err
	}
	return float64(d), nil
}

// Buffer computes a buffer of the geometry. See the GEOS docs for details
func (g *Geometry) Buffer(distance float64, segments int, opts ...GeometryOption) (*Geometry, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindBuffer(cgc.cPointer(), g.handle, C.double(distance), C.int(segments))
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

type simplifyOpts struct {
	preserveTopology bool
	errorHandler     ErrorHandler
}

// SimplifyOption is an option that can be passed to Geometry.Simplify()
//
// Available SimplifyOptions are:
//
// • PreserveTopology
//
// • ErrLogger
type SimplifyOption interface {
	setSimplifyOpt(so *simplifyOpts)
}

type preserveTopologyOpt struct{}

func (preserveTopologyOpt) setSimplifyOpt(so *simplifyOpts) {
	so.preserveTopology = true
}

// PreserveTopology makes Simplify keep the geometry valid, at the cost of a lower simplification
func PreserveTopology() interface {
	SimplifyOption
} {
	return preserveTopologyOpt{}
}

// Simplify simplifies the geometry with the given tolerance
func (g *Geometry) Simplify(tolerance float64, opts ...SimplifyOption) (*Geometry, error) {
	so := simplifyOpts{}
	for _, o := range opts {
		o.setSimplifyOpt(&so)
	}
	preserve := C.int(0)
	if so.preserveTopology {
		preserve = 1
	}
	cgc := createCGOContext(nil, so.errorHandler)
	hndl := C.geobindSimplify(cgc.cPointer(), g.handle, C.double(tolerance), preserve)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// Segmentize adds intermediate vertices so that no segment is longer than maxLength
func (g *Geometry) Segmentize(maxLength float64, opts ...GeometryOption) error {
	if maxLength <= 0 {
		return fmt.Errorf("invalid segment length %g: %w", maxLength, ErrIllegalArg)
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindSegmentize(cgc.cPointer(), g.handle, C.double(maxLength))
	return cgc.close()
}

// SpatialRef returns the geometry's SpatialRef, or nil. The returned SpatialRef
// is borrowed from the geometry.
func (g *Geometry) SpatialRef() *SpatialRef {
	hndl := C.OGR_G_GetSpatialReference(g.handle)
	if hndl == nil {
		return nil
	}
	return &SpatialRef{handle: hndl, isOwned: false}
}

// SetSpatialRef assigns the given SpatialRef to the Geometry. It does not perform
// an actual reprojection. A nil sr clears the geometry's SpatialRef.
func (g *Geometry) SetSpatialRef(sr *SpatialRef) {
	C.OGR_G_AssignSpatialReference(g.handle, srHandle(sr))
}

// Reproject reprojects the given geometry to the given SpatialRef
func (g *Geometry) Reproject(to *SpatialRef, opts ...GeometryOption) error {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindReprojectGeometry(cgc.cPointer(), g.handle, to.handle)
	return cgc.close()
}

// Transform transforms the given geometry. g is expected to already be
// in the supplied Transform source SpatialRef.
func (g *Geometry) Transform(trn *Transform, opts ...GeometryOption) error {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindTransformGeometry(cgc.cPointer(), g.handle, trn.handle)
	return cgc.close()
}

// ByteOrder is the byte order of a WKB encoding
type ByteOrder int

const (
	// BigEndian is the XDR byte order
	BigEndian = ByteOrder(C.wkbXDR)
	// LittleEndian is the NDR byte order
	LittleEndian = ByteOrder(C.wkbNDR)
)

// WKBSize returns the size in bytes of the geometry's WKB encoding
func (g *Geometry) WKBSize() int {
	return int(C.OGR_G_WkbSize(g.handle))
}

// WKB returns the Geometry's WKB representation
func (g *Geometry) WKB(order ByteOrder, opts ...GeometryOption) ([]byte, error) {
	sz := g.WKBSize()
	if sz == 0 {
		return nil, fmt.Errorf("cannot encode geometry to wkb: %w", ErrFailure)
	}
	buf := C.malloc(C.size_t(sz))
	defer C.free(buf)
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindExportWKB(cgc.cPointer(), g.handle, buf, C.int(order))
	if err := cgc.close(); err != nil {
		return nil, err
	}
	return C.GoBytes(buf, C.int(sz)), nil
}

// ImportWKB replaces the geometry's contents with the given WKB, which must be
// of the same type as g
func (g *Geometry) ImportWKB(wkb []byte, opts ...GeometryOption) error {
	if len(wkb) == 0 {
		return fmt.Errorf("empty wkb: %w", ErrNotEnoughData)
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindImportWKB(cgc.cPointer(), g.handle, unsafe.Pointer(&wkb[0]), C.int(len(wkb)))
	return cgc.close()
}

// WKT returns the Geometry's WKT representation
func (g *Geometry) WKT(opts ...GeometryOption) (string, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	cwkt := C.geobindExportWKT(cgc.cPointer(), g.handle)
	if err := cgc.close(); err != nil {
		return "", err
	}
	defer C.CPLFree(unsafe.Pointer(cwkt))
	return C.GoString(cwkt), nil
}

// ImportWKT replaces the geometry's contents with the given WKT, which must be
// of the same type as g
func (g *Geometry) ImportWKT(wkt string, opts ...GeometryOption) error {
	cwkt := C.CString(wkt)
	defer C.free(unsafe.Pointer(cwkt))
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	C.geobindImportWKT(cgc.cPointer(), g.handle, cwkt)
	return cgc.close()
}

type geojsonOpts struct {
	options      []string
	errorHandler ErrorHandler
}

// GeoJSONOption is an option that can be passed to Geometry.GeoJSON()
//
// Available GeoJSONOptions are:
//
// • SignificantDigits
//
// • CoordinatePrecision
//
// • ErrLogger
type GeoJSONOption interface {
	setGeojsonOpt(o *geojsonOpts)
}

type geojsonFlag string

func (f geojsonFlag) setGeojsonOpt(o *geojsonOpts) {
	o.options = append(o.options, string(f))
}

// SignificantDigits sets the number of significant figures of the written coordinates
func SignificantDigits(n int) interface {
	GeoJSONOption
} {
	return geojsonFlag("SIGNIFICANT_FIGURES=" + strconv.Itoa(n))
}

// CoordinatePrecision sets the maximum number of decimals of the written coordinates
func CoordinatePrecision(n int) interface {
	GeoJSONOption
} {
	return geojsonFlag("COORDINATE_PRECISION=" + strconv.Itoa(n))
}

// GeoJSON returns the geometry in geojson format. The geometry is expected to be in epsg:4326
// projection per RFC7946
func (g *Geometry) GeoJSON(opts ...GeoJSONOption) (string, error) {
	gjo := geojsonOpts{}
	for _, opt := range opts {
		opt.setGeojsonOpt(&gjo)
	}
	copts := sliceToCStringArray(gjo.options)
	defer copts.free()
	cgc := createCGOContext(nil, gjo.errorHandler)
	gjdata := C.geobindExportGeoJSON(cgc.cPointer(), g.handle, copts.cPointer())
	if err := cgc.close(); err != nil {
		return "", err
	}
	defer C.CPLFree(unsafe.Pointer(gjdata))
	return C.GoString(gjdata), nil
}

type gmlOpts struct {
	options      []string
	errorHandler ErrorHandler
}

// GMLOption is an option that can be passed to Geometry.GML()
//
// Available GMLOptions are:
//
// • GMLFormat
//
// • ErrLogger
type GMLOption interface {
	setGMLOpt(o *gmlOpts)
}

type gmlFormatOpt []string

func (f gmlFormatOpt) setGMLOpt(o *gmlOpts) {
	o.options = append(o.options, f...)
}

// GMLFormat passes KEY=VALUE conversion options to the GML writer, e.g.
// FORMAT=GML3 or GML3_LONGSRS=YES
func GMLFormat(opts ...string) interface {
	GMLOption
} {
	return gmlFormatOpt(opts)
}

// GML returns the geometry in GML format.
func (g *Geometry) GML(opts ...GMLOption) (string, error) {
	gmlo := gmlOpts{}
	for _, o := range opts {
		o.setGMLOpt(&gmlo)
	}
	copts := sliceToCStringArray(gmlo.options)
	defer copts.free()
	cgc := createCGOContext(nil, gmlo.errorHandler)
	cgml := C.geobindExportGML(cgc.cPointer(), g.handle, copts.cPointer())
	if err := cgc.close(); err != nil {
		return "", err
	}
	defer C.CPLFree(unsafe.Pointer(cgml))
	return C.GoString(cgml), nil
}

// KML returns the geometry in KML format. altMode is an optional altitudeMode
// (e.g. "absolute") written for 3D geometries.
func (g *Geometry) KML(altMode string, opts ...GeometryOption) (string, error) {
	var calt *C.char
	if altMode != "" {
		calt = C.CString(altMode)
		defer C.free(unsafe.Pointer(calt))
	}
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	ckml := C.geobindExportKML(cgc.cPointer(), g.handle, calt)
	if err := cgc.close(); err != nil {
		return "", err
	}
	defer C.CPLFree(unsafe.Pointer(ckml))
	return C.GoString(ckml), nil
}

func (g *Geometry) forceTo(target C.int, opts []GeometryOption) (*Geometry, error) {
	cgc := createCGOContext(nil, geometryErrorHandler(opts))
	hndl := C.geobindForceTo(cgc.cPointer(), g.handle, target)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.OGR_G_DestroyGeometry(hndl)
		}
		return nil, err
	}
	return newGeometry(hndl), nil
}

// ForceToLineString returns a linestring version of the geometry. g is left untouched.
func (g *Geometry) ForceToLineString(opts ...GeometryOption) (*Geometry, error) {
	return g.forceTo(C.GEOBIND_FORCE_LINESTRING, opts)
}

// ForceToPolygon returns a polygon version of the geometry. g is left untouched.
func (g *Geometry) ForceToPolygon(opts ...GeometryOption) (*Geometry, error) {
	return g.forceTo(C.GEOBIND_FORCE_POLYGON, opts)
}

// ForceToMultiPoint returns a multipoint version of the geometry. g is left untouched.
func (g *Geometry) ForceToMultiPoint(opts ...GeometryOption) (*Geometry, error) {
	return g.forceTo(C.GEOBIND_FORCE_MULTIPOINT, opts)
}

// ForceToMultiLineString returns a multilinestring version of the geometry. g is left untouched.
func (g *Geometry) ForceToMultiLineString(opts ...GeometryOption) (*Geometry, error) {
	return g.forceTo(C.GEOBIND_FORCE_MULTILINESTRING, opts)
}

// ForceToMultiPolygon returns a multipolygon version of the geometry. g is left untouched.
func (g *Geometry) ForceToMultiPolygon(opts ...GeometryOption) (*Geometry, error) {
	return g.forceTo(C.GEOBIND_FORCE_MULTIPOLYGON, opts)
}

// DumpReadable writes a human readable dump of the geometry to w
func (g *Geometry) DumpReadable(w io.Writer) error {
	cdump := C.geobindDumpGeometry(g.handle, nil)
	if cdump == nil {
		return fmt.Errorf("dump geometry: %w", ErrFileIO)
	}
	defer C.CPLFree(unsafe.Pointer(cdump))
	_, err := io.WriteString(w, C.GoString(cdump))
	return err
}
