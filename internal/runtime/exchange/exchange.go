// Package exchange models the per-message processing context that pipeline
// stages share: headers read from the inbound message and properties written
// for downstream stages.
package exchange

// Exchange is the capability set a processor needs from a message: reading a
// map-valued header and writing a string property.
//
// MapHeader returns a nil map and a nil error when the header is absent. An
// error means the header exists but cannot be read as a string map.
type Exchange interface {
	MapHeader(name string) (map[string]string, error)
	SetProperty(name, value string)
}

// Identified is implemented by exchanges that carry a stable id, used for
// log correlation.
type Identified interface {
	ID() string
}

// IDOf returns the id of ex, or an empty string.
func IDOf(ex Exchange) string {
	if identified, ok := ex.(Identified); ok {
		return identified.ID()
	}
	return ""
}
