package geobind

// Options follow a single pattern: an unexported xxxOpts struct filled in by the
// exported XxxOption interface. Constructors return anonymous interfaces listing
// every operation they can be passed to.

type datasetOpts struct {
	errorHandler ErrorHandler
}

// DatasetOption is an option that can be passed to Dataset methods that may emit
// gdal errors (Close, SetGeoTransform, SetProjection, SetGCPs, ClearStatistics...)
//
// Available DatasetOptions are:
//
// • ErrLogger
type DatasetOption interface {
	setDatasetOpt(o *datasetOpts)
}

type bandOpts struct {
	errorHandler ErrorHandler
}

// BandOption is an option that can be passed to Band methods that modify the band
// (SetNoData, SetColorInterp, SetColorTable, SetScale, ReadBlock, ...)
//
// Available BandOptions are:
//
// • ErrLogger
type BandOption interface {
	setBandOpt(o *bandOpts)
}

type geometryOpts struct {
	errorHandler ErrorHandler
}

// GeometryOption is an option that can be passed to Geometry constructors and to
// Geometry methods that may emit gdal errors
//
// Available GeometryOptions are:
//
// • ErrLogger
type GeometryOption interface {
	setGeometryOpt(o *geometryOpts)
}

type featureOpts struct {
	errorHandler ErrorHandler
}

// FeatureOption is an option that can be passed to Feature methods that may emit
// gdal errors
//
// Available FeatureOptions are:
//
// • ErrLogger
type FeatureOption interface {
	setFeatureOpt(o *featureOpts)
}

type layerOpts struct {
	errorHandler ErrorHandler
}

// LayerOption is an option that can be passed to Layer methods that may emit gdal errors
//
// Available LayerOptions are:
//
// • ErrLogger
type LayerOption interface {
	setLayerOpt(o *layerOpts)
}

type spatialRefOpts struct {
	errorHandler ErrorHandler
}

// SpatialRefOption is an option that can be passed to SpatialRef constructors,
// SpatialRef.WKT() and NewTransform()
//
// Available SpatialRefOptions are:
//
// • ErrLogger
type SpatialRefOption interface {
	setSpatialRefOpt(o *spatialRefOpts)
}

type openOpts struct {
	flags        uint
	drivers      []string //list of drivers that can be tried to open the given name
	options      []string //driver specific open options (see gdal docs for each driver)
	siblingFiles []string //list of sidecar files
	config       []string
	errorHandler ErrorHandler
}

// OpenOption is an option passed to Open()
//
// Available OpenOptions are:
//
// • Drivers
//
// • SiblingFiles
//
// • ConfigOption
//
// • Update
//
// • DriverOpenOption
//
// • RasterOnly
//
// • VectorOnly
//
// • ErrLogger
type OpenOption interface {
	setOpenOpt(oo *openOpts)
}

type dsCreateOpts struct {
	config       []string
	creation     []string
	errorHandler ErrorHandler
}

// DatasetCreateOption is an option that can be passed to Create() and CreateVector()
//
// Available DatasetCreateOptions are:
//
// • CreationOption
//
// • ConfigOption
//
// • ErrLogger
type DatasetCreateOption interface {
	setDatasetCreateOpt(dc *dsCreateOpts)
}

type createLayerOpts struct {
	fields       []*FieldDefinition
	options      []string
	errorHandler ErrorHandler
}

// CreateLayerOption is an option that can be passed to Dataset.CreateLayer()
//
// Available CreateLayerOptions are:
//
// • NewFieldDefinition: a *FieldDefinition is itself a CreateLayerOption and adds
// the field to the created layer
//
// • LayerCreationOption
//
// • ErrLogger
type CreateLayerOption interface {
	setCreateLayerOpt(clo *createLayerOpts)
}

type metadataOpts struct {
	domain       string
	errorHandler ErrorHandler
}

// MetadataOption is an option that can be passed to metadata related calls
// Available MetadataOptions are:
//
// • Domain
//
// • ErrLogger
type MetadataOption interface {
	setMetadataOpt(mo *metadataOpts)
}

type bandCreateMaskOpts struct {
	config       []string
	errorHandler ErrorHandler
}

// BandCreateMaskOption is an option that can be passed to Band.CreateMask()
//
// Available BandCreateMaskOptions are:
//
// • ConfigOption
//
// • ErrLogger
type BandCreateMaskOption interface {
	setBandCreateMaskOpt(dcm *bandCreateMaskOpts)
}

type bandIOOpts struct {
	config                    []string
	dsWidth, dsHeight         int
	pixelSpacing, lineSpacing int
	errorHandler              ErrorHandler
}

// BandIOOption is an option to modify the default behavior of band.IO
//
// Available BandIOOptions are:
//
// • Window
//
// • ConfigOption
//
// • PixelSpacing
//
// • LineSpacing
//
// • ErrLogger
type BandIOOption interface {
	setBandIOOpt(ro *bandIOOpts)
}

type copyRasterOpts struct {
	options      []string
	config       []string
	errorHandler ErrorHandler
}

// CopyRasterOption is an option that can be passed to Band.CopyWholeRaster()
//
// Available CopyRasterOptions are:
//
// • Compressed
//
// • SkipHoles
//
// • ConfigOption
//
// • ErrLogger
type CopyRasterOption interface {
	setCopyRasterOpt(o *copyRasterOpts)
}

type gridCreateOpts struct {
	config       []string
	errorHandler ErrorHandler
}

// GridCreateOption is an option that can be passed to GridCreate()
//
// Available GridCreateOptions are:
//
// • ConfigOption
//
// • ErrLogger
type GridCreateOption interface {
	setGridCreateOpt(o *gridCreateOpts)
}

type configOpts struct {
	config []string
}

// ConfigOption sets a configuration option for a gdal library call. See the
// specific gdal function doc page and specific driver docs for allowed values.
//
// Notable options are GDAL_NUM_THREADS=8
func ConfigOption(cfgs ...string) interface {
	OpenOption
	DatasetCreateOption
	BandCreateMaskOption
	BandIOOption
	CopyRasterOption
	GridCreateOption
	errorAndLoggingOption
} {
	return configOpts{cfgs}
}

func (co configOpts) setOpenOpt(oo *openOpts) {
	oo.config = append(oo.config, co.config...)
}
func (co configOpts) setDatasetCreateOpt(dc *dsCreateOpts) {
	dc.config = append(dc.config, co.config...)
}
func (co configOpts) setBandCreateMaskOpt(bcm *bandCreateMaskOpts) {
	bcm.config = append(bcm.config, co.config...)
}
func (co configOpts) setBandIOOpt(o *bandIOOpts) {
	o.config = append(o.config, co.config...)
}
func (co configOpts) setCopyRasterOpt(o *copyRasterOpts) {
	o.config = append(o.config, co.config...)
}
func (co configOpts) setGridCreateOpt(o *gridCreateOpts) {
	o.config = append(o.config, co.config...)
}
func (co configOpts) setErrorAndLoggingOpt(elo *errorAndLoggingOpts) {
	elo.config = append(elo.config, co.config...)
}

type errorCallback struct {
	fn ErrorHandler
}

// ErrLogger overrides the default error handler for a single call. See ErrorHandler.
func ErrLogger(fn ErrorHandler) interface {
	errorAndLoggingOption
	BandCreateMaskOption
	BandIOOption
	BandOption
	CopyRasterOption
	CreateLayerOption
	DatasetCreateOption
	DatasetOption
	FeatureOption
	GCPTransformerOption
	GeoJSONOption
	GeometryOption
	GMLOption
	GridCreateOption
	HistogramOption
	LayerOption
	MetadataOption
	OpenOption
	SimplifyOption
	SpatialRefOption
	StatisticsOption
	VSIOption
} {
	return errorCallback{fn}
}

func (ec errorCallback) setErrorAndLoggingOpt(elo *errorAndLoggingOpts) {
	elo.eh = ec.fn
}
func (ec errorCallback) setBandCreateMaskOpt(o *bandCreateMaskOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setBandIOOpt(o *bandIOOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setBandOpt(o *bandOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setCopyRasterOpt(o *copyRasterOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setCreateLayerOpt(o *createLayerOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetCreateOpt(o *dsCreateOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetOpt(o *datasetOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setFeatureOpt(o *featureOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGCPTransformerOpt(o *gcpTransformerOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeojsonOpt(o *geojsonOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeometryOpt(o *geometryOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGMLOpt(o *gmlOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGridCreateOpt(o *gridCreateOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setHistogramOpt(o *histogramOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setLayerOpt(o *layerOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setMetadataOpt(o *metadataOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setOpenOpt(o *openOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSimplifyOpt(o *simplifyOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSpatialRefOpt(o *spatialRefOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setVSIOpt(o *vsiOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setStatisticsOpt(o *statisticsOpts) {
	o.errorHandler = ec.fn
}

type creationOpts struct {
	creation []string
}

// CreationOption are options to pass to a driver when creating a dataset, to be
// passed in the form KEY=VALUE
//
// Examples are: BLOCKXSIZE=256, COMPRESS=LZW, NUM_THREADS=8, etc...
func CreationOption(opts ...string) interface {
	DatasetCreateOption
} {
	return creationOpts{opts}
}

func (co creationOpts) setDatasetCreateOpt(dc *dsCreateOpts) {
	dc.creation = append(dc.creation, co.creation...)
}

type layerCreationOpts struct {
	options []string
}

// LayerCreationOption are driver specific layer creation options, in the form KEY=VALUE
func LayerCreationOption(opts ...string) interface {
	CreateLayerOption
} {
	return layerCreationOpts{opts}
}

func (lco layerCreationOpts) setCreateLayerOpt(o *createLayerOpts) {
	o.options = append(o.options, lco.options...)
}

// Domain specifies the gdal metadata domain to use
func Domain(mdDomain string) interface {
	MetadataOption
} {
	return domainOpt{mdDomain}
}

type domainOpt struct {
	domain string
}

func (mdo domainOpt) setMetadataOpt(mo *metadataOpts) {
	mo.domain = mdo.domain
}

type pixelSpacingOpt struct {
	sp int
}
type lineSpacingOpt struct {
	sp int
}

func (so lineSpacingOpt) setBandIOOpt(bo *bandIOOpts) {
	bo.lineSpacing = so.sp
}
func (so pixelSpacingOpt) setBandIOOpt(bo *bandIOOpts) {
	bo.pixelSpacing = so.sp
}

// PixelSpacing sets the number of bytes from one pixel to the next pixel in the same row. If not
// provided, it will be calculated from the pixel type
func PixelSpacing(stride int) interface {
	BandIOOption
} {
	return pixelSpacingOpt{stride}
}

// LineSpacing sets the number of bytes from one pixel to the pixel of the same band one row below. If not
// provided, it will be calculated from the pixel type and buffer width
func LineSpacing(stride int) interface {
	BandIOOption
} {
	return lineSpacingOpt{stride}
}

type windowOpt struct {
	sx, sy int
}

// Window specifies the size of the band window to read/write. By default use the
// size of the input/output buffer (i.e. no resampling)
func Window(sx, sy int) interface {
	BandIOOption
} {
	return windowOpt{sx, sy}
}

func (wo windowOpt) setBandIOOpt(ro *bandIOOpts) {
	ro.dsWidth = wo.sx
	ro.dsHeight = wo.sy
}

type copyRasterFlag string

func (f copyRasterFlag) setCopyRasterOpt(o *copyRasterOpts) {
	o.options = append(o.options, string(f))
}

// Compressed hints CopyWholeRaster that the destination is compressed, so that
// blocks are written in an order that avoids recompressing them
func Compressed() interface {
	CopyRasterOption
} {
	return copyRasterFlag("COMPRESSED=YES")
}

// SkipHoles makes CopyWholeRaster skip source blocks that are entirely empty
func SkipHoles() interface {
	CopyRasterOption
} {
	return copyRasterFlag("SKIP_HOLES=YES")
}
