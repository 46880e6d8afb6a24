package element

import (
	"fmt"
	"time"
)

// A Tag is a single key=value pair of an OSM element. Tags are kept
// as an ordered list, not a map, since the cleaning rules depend on
// document order (e.g. when merging split-off tags).
type Tag struct {
	Key   string
	Value string
}

type Tags []Tag

func (t Tags) String() string {
	return fmt.Sprintf("%v", []Tag(t))
}

// Get returns the value of the first tag with key, or "".
func (t Tags) Get(key string) string {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

// Has reports whether any tag has key.
func (t Tags) Has(key string) bool {
	for _, tag := range t {
		if tag.Key == key {
			return true
		}
	}
	return false
}

// Metadata contains the editing metadata of an element. All fields
// are required for the relational output.
type Metadata struct {
	UserID    int32
	UserName  string
	Version   int32
	Timestamp time.Time
	Changeset int64
}

type OSMElem struct {
	ID       int64
	Tags     Tags
	Metadata *Metadata
}

type Node struct {
	OSMElem
	Lat  float64
	Long float64
}

type Way struct {
	OSMElem
	// Refs is the ordered list of all node IDs that define this way.
	Refs []int64
}

func (w *Way) IsClosed() bool {
	return len(w.Refs) >= 4 && w.Refs[0] == w.Refs[len(w.Refs)-1]
}
