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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"
)

// ErrorCategory wraps GDAL's error types
type ErrorCategory int

const (
	// CE_None is not an error
	CE_None = ErrorCategory(C.CE_None)
	// CE_Debug is a debug level
	CE_Debug = ErrorCategory(C.CE_Debug)
	// CE_Warning is a warning level
	CE_Warning = ErrorCategory(C.CE_Warning)
	// CE_Failure is an error
	CE_Failure = ErrorCategory(C.CE_Failure)
	// CE_Fatal is an unrecoverable error
	CE_Fatal = ErrorCategory(C.CE_Fatal)
)

func (ec ErrorCategory) String() string {
	switch ec {
	case CE_None:
		return "none"
	case CE_Debug:
		return "debug"
	case CE_Warning:
		return "warning"
	case CE_Failure:
		return "failure"
	case CE_Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("category(%d)", int(ec))
	}
}

// ErrorNumber is a CPLE_* error code as emitted by GDAL alongside an error message.
type ErrorNumber int

const (
	CPLE_None            = ErrorNumber(C.CPLE_None)
	CPLE_AppDefined      = ErrorNumber(C.CPLE_AppDefined)
	CPLE_OutOfMemory     = ErrorNumber(C.CPLE_OutOfMemory)
	CPLE_FileIO          = ErrorNumber(C.CPLE_FileIO)
	CPLE_OpenFailed      = ErrorNumber(C.CPLE_OpenFailed)
	CPLE_IllegalArg      = ErrorNumber(C.CPLE_IllegalArg)
	CPLE_NotSupported    = ErrorNumber(C.CPLE_NotSupported)
	CPLE_AssertionFailed = ErrorNumber(C.CPLE_AssertionFailed)
	CPLE_NoWriteAccess   = ErrorNumber(C.CPLE_NoWriteAccess)
	CPLE_UserInterrupt   = ErrorNumber(C.CPLE_UserInterrupt)
	CPLE_ObjectNull      = ErrorNumber(C.CPLE_ObjectNull)
)

var (
	ErrOutOfMemory     = errors.New("out of memory")
	ErrFileIO          = errors.New("file I/O error")
	ErrOpenFailed      = errors.New("open failed")
	ErrIllegalArg      = errors.New("illegal argument")
	ErrNotSupported    = errors.New("unsupported operation")
	ErrAssertionFailed = errors.New("assertion failed")
	ErrNoWriteAccess   = errors.New("no write access")
	ErrUserInterrupt   = errors.New("interrupted")
	ErrObjectNull      = errors.New("null object")

	ErrNotEnoughData           = errors.New("not enough data")
	ErrUnsupportedGeometryType = errors.New("unsupported geometry type")
	ErrCorruptData             = errors.New("corrupt data")
	ErrFailure                 = errors.New("failure")
	ErrUnsupportedSRS          = errors.New("unsupported spatial reference")
	ErrInvalidHandle           = errors.New("invalid handle")
	ErrNonExistingFeature      = errors.New("non existing feature")
)

var cpleSentinels = []error{
	CPLE_None:            nil,
	CPLE_AppDefined:      nil,
	CPLE_OutOfMemory:     ErrOutOfMemory,
	CPLE_FileIO:          ErrFileIO,
	CPLE_OpenFailed:      ErrOpenFailed,
	CPLE_IllegalArg:      ErrIllegalArg,
	CPLE_NotSupported:    ErrNotSupported,
	CPLE_AssertionFailed: ErrAssertionFailed,
	CPLE_NoWriteAccess:   ErrNoWriteAccess,
	CPLE_UserInterrupt:   ErrUserInterrupt,
	CPLE_ObjectNull:      ErrObjectNull,
}

// Sentinel returns the package level error matching the error number, or nil
// for CPLE_None, CPLE_AppDefined and numbers that have no dedicated sentinel
// (e.g. the http or cloud storage codes).
func (n ErrorNumber) Sentinel() error {
	if n < 0 || int(n) >= len(cpleSentinels) {
		return nil
	}
	return cpleSentinels[n]
}

var ogrSentinels = map[int]error{
	C.OGRERR_NOT_ENOUGH_DATA:           ErrNotEnoughData,
	C.OGRERR_NOT_ENOUGH_MEMORY:         ErrOutOfMemory,
	C.OGRERR_UNSUPPORTED_GEOMETRY_TYPE: ErrUnsupportedGeometryType,
	C.OGRERR_UNSUPPORTED_OPERATION:     ErrNotSupported,
	C.OGRERR_CORRUPT_DATA:              ErrCorruptData,
	C.OGRERR_FAILURE:                   ErrFailure,
	C.OGRERR_UNSUPPORTED_SRS:           ErrUnsupportedSRS,
	C.OGRERR_INVALID_HANDLE:            ErrInvalidHandle,
	C.OGRERR_NON_EXISTING_FEATURE:      ErrNonExistingFeature,
}

func ogrError(code int) error {
	if code == C.OGRERR_NONE {
		return nil
	}
	if err, ok := ogrSentinels[code]; ok {
		return fmt.Errorf("ogr error %d: %w", code, err)
	}
	return fmt.Errorf("ogr error %d: %w", code, ErrFailure)
}

// Error is a message emitted by GDAL that has been classified as an error.
// errors.Is(err, ErrOpenFailed) and the likes can be used to test for a
// specific error number.
type Error struct {
	Category ErrorCategory
	Number   ErrorNumber
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Number.Sentinel()
}

// ErrorHandler is a function that can be used to override geobind's default behavior
// of logging warnings and treating messages with severity >= CE_Failure as errors.
// When an ErrorHandler is passed as an option to a geobind function, all logs/errors
// emitted by gdal will be passed to this function, which can decide wether the
// parameters correspond to an actual error or not.
//
// If the ErrorHandler returns nil, the parent function will not return an error. It is up
// to the ErrorHandler to log the message if needed.
//
// If the ErrorHandler returns an error, that error will be returned to the caller
// of the parent function, joined with any other error emitted during the same call.
type ErrorHandler func(ec ErrorCategory, code int, msg string) error

// CPLErrorHandler dispatches GDAL messages to one hook per error category.
// A nil hook makes messages of that category succeed silently.
type CPLErrorHandler struct {
	OnNone    func(err *Error) error
	OnDebug   func(err *Error) error
	OnWarning func(err *Error) error
	OnFailure func(err *Error) error
	OnFatal   func(err *Error) error
}

// NewCPLErrorHandler returns a handler with the default hooks: debug messages
// are logged at debug level, warnings are logged and do not make the call fail,
// failures and fatal errors are returned.
func NewCPLErrorHandler() *CPLErrorHandler {
	return &CPLErrorHandler{
		OnNone: nil,
		OnDebug: func(err *Error) error {
			Logger().Debug(err.Message, "code", int(err.Number))
			return nil
		},
		OnWarning: func(err *Error) error {
			Logger().Warn(err.Message, "code", int(err.Number), "category", err.Category.String())
			return nil
		},
		OnFailure: failHook,
		OnFatal:   failHook,
	}
}

func failHook(err *Error) error {
	return err
}

// Handle classifies a GDAL message. Its signature matches ErrorHandler so that it
// can be passed to ErrLogger.
func (h *CPLErrorHandler) Handle(ec ErrorCategory, code int, msg string) error {
	err := &Error{Category: ec, Number: ErrorNumber(code), Message: msg}
	var hook func(*Error) error
	switch ec {
	case CE_None:
		hook = h.OnNone
	case CE_Debug:
		hook = h.OnDebug
	case CE_Warning:
		hook = h.OnWarning
	case CE_Failure:
		hook = h.OnFailure
	case CE_Fatal:
		hook = h.OnFatal
	default:
		hook = failHook
	}
	if hook == nil {
		return nil
	}
	return hook(err)
}

// WarningsAsErrors is an ErrorHandler that makes any message of severity
// CE_Warning or higher fail the call.
func WarningsAsErrors(ec ErrorCategory, code int, msg string) error {
	if ec >= CE_Warning {
		return &Error{Category: ec, Number: ErrorNumber(code), Message: msg}
	}
	return nil
}

var (
	errorHandlerMu      sync.Mutex
	errorHandlerIndex   int
	defaultErrorHandler ErrorHandler = NewCPLErrorHandler().Handle
)

// SetDefaultErrorHandler replaces the handler used by calls that were not given an
// ErrLogger option, and returns the previous one so that it can be restored.
// Passing nil restores the default CPLErrorHandler.
func SetDefaultErrorHandler(eh ErrorHandler) ErrorHandler {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	prev := defaultErrorHandler
	if eh == nil {
		eh = NewCPLErrorHandler().Handle
	}
	defaultErrorHandler = eh
	return prev
}

type errorHandlerWrapper struct {
	fn  ErrorHandler
	err error
}

var errorHandlers = make(map[int]*errorHandlerWrapper)

func registerErrorHandler(fn ErrorHandler) int {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	if fn == nil {
		fn = defaultErrorHandler
	}
	errorHandlerIndex++
	for errorHandlerIndex <= 0 || errorHandlers[errorHandlerIndex] != nil {
		errorHandlerIndex++
		if errorHandlerIndex < 0 {
			errorHandlerIndex = 1
		}
	}
	errorHandlers[errorHandlerIndex] = &errorHandlerWrapper{fn: fn}
	return errorHandlerIndex
}

func getErrorHandler(i int) *errorHandlerWrapper {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	return errorHandlers[i]
}

func unregisterErrorHandler(i int) {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	delete(errorHandlers, i)
}

//export goErrorHandler
func goErrorHandler(loggerID C.int, ec C.int, code C.int, msg *C.char) C.int {
	//returns 0 if the received ec/code/msg is not an actual error
	//returns !0 if msg should be considered an error
	gmsg := C.GoString(msg)
	if loggerID == 0 {
		logGlobal(ErrorCategory(ec), int(code), gmsg)
		return 0
	}
	lfn := getErrorHandler(int(loggerID))
	if lfn == nil {
		logGlobal(ErrorCategory(ec), int(code), gmsg)
		return 0
	}
	if err := lfn.fn(ErrorCategory(ec), int(code), gmsg); err != nil {
		lfn.err = errors.Join(lfn.err, err)
		return 1
	}
	return 0
}

// logGlobal handles messages emitted outside of any geobind call context.
func logGlobal(ec ErrorCategory, code int, msg string) {
	level := slog.LevelInfo
	switch {
	case ec == CE_Debug:
		level = slog.LevelDebug
	case ec == CE_Warning:
		level = slog.LevelWarn
	case ec >= CE_Failure:
		level = slog.LevelError
	}
	Logger().Log(context.Background(), level, msg, "code", code, "category", ec.String())
}

type cgoContext struct {
	cctx *C.cctx
	opts cStringArray
}

func createCGOContext(configOptions []string, eh ErrorHandler) cgoContext {
	cgc := cgoContext{
		opts: sliceToCStringArray(configOptions),
		cctx: (*C.cctx)(C.malloc(C.size_t(unsafe.Sizeof(C.cctx{})))),
	}
	cgc.cctx.configOptions = cgc.opts.cPointer()
	cgc.cctx.failed = 0
	cgc.cctx.ogrErr = 0
	cgc.cctx.handlerIdx = C.int(registerErrorHandler(eh))
	return cgc
}

func (cgc cgoContext) cPointer() *C.cctx {
	return cgc.cctx
}

// frees the context and returns any error it may contain
func (cgc cgoContext) close() error {
	cgc.opts.free()
	defer C.free(unsafe.Pointer(cgc.cctx))
	idx := int(cgc.cctx.handlerIdx)
	defer unregisterErrorHandler(idx)
	return errors.Join(getErrorHandler(idx).err, ogrError(int(cgc.cctx.ogrErr)))
}

type errorAndLoggingOpts struct {
	eh     ErrorHandler
	config []string
}

type errorAndLoggingOption interface {
	setErrorAndLoggingOpt(elo *errorAndLoggingOpts)
}

// emitError makes gdal emit the given message through the call context built from opts.
func emitError(ec ErrorCategory, code ErrorNumber, msg string, opts ...errorAndLoggingOption) error {
	ealo := errorAndLoggingOpts{}
	for _, o := range opts {
		o.setErrorAndLoggingOpt(&ealo)
	}
	cgc := createCGOContext(ealo.config, ealo.eh)
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.geobindEmitError(cgc.cPointer(), C.int(ec), C.int(code), cmsg)
	return cgc.close()
}
