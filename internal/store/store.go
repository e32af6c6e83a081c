// Package store persists whole record collections. Every SaveAll replaces
// the stored collection with the given records in one atomic write.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

type Collection string

const (
	Orders             Collection = "orders"
	Designs            Collection = "designs"
	Cards              Collection = "cards"
	ConnectionRequests Collection = "connection_requests"
	Connections        Collection = "connections"
)

// Collections lists every collection in load order.
var Collections = []Collection{Orders, Designs, Cards, ConnectionRequests, Connections}

var ErrUnknownCollection = errors.New("unknown collection")

// Store is the durability collaborator. dest is a pointer to a slice of the
// collection's model; records is a slice (or pointer to one).
// Loading a collection that was never saved leaves dest empty.
type Store interface {
	LoadAll(ctx context.Context, c Collection, dest any) error
	SaveAll(ctx context.Context, c Collection, records any) error
}

func checkCollection(c Collection) error {
	for _, known := range Collections {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
}

// sliceLen returns the length of a slice or pointer to slice.
func sliceLen(records any) (int, error) {
	rv := reflect.ValueOf(records)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return 0, fmt.Errorf("records must be a slice, got %T", records)
	}
	return rv.Len(), nil
}

// addressable returns records as a pointer to slice so gorm can write into it.
func addressable(records any) any {
	rv := reflect.ValueOf(records)
	if rv.Kind() == reflect.Pointer {
		return records
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr.Interface()
}
