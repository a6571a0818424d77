package magnetlink

import (
	"errors"
)

var ErrInvalidMagnetLink = errors.New("invalid magnet link")
var ErrURINotAbsolute = errors.New("uri is not absolute")
var ErrInvalidPctEncoding = errors.New("invalid percent-encoding")

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyLinksTableName = errors.New("empty linksTableName supplied")
var ErrSavingLinkFailed = errors.New("saving magnet link failed")
var ErrQueryingLinksFailed = errors.New("querying magnet links failed")
var ErrRemovingLinksFailed = errors.New("removing magnet links failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
var ErrBuildingStorableLinkFailed = errors.New("building storable link from database row failed")

// InfoHashString is a type alias for string, representing the hash component of an exact-topic URN.
type InfoHashString = string

// ProtocolString is a type alias for string, representing the protocol component of an exact-topic URN.
type ProtocolString = string
