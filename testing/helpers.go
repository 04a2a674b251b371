// Package testing provides fixture models for mapper tests and benchmarks.
package testing

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// SimpleModel is a source record.
type SimpleModel struct {
	ID      int       `json:"id" yaml:"id" msgpack:"id" xml:"id" bson:"id"`
	Date    time.Time `json:"date" yaml:"date" msgpack:"date" xml:"date" bson:"date"`
	Decimal float64   `json:"decimal" yaml:"decimal" msgpack:"decimal" xml:"decimal" bson:"decimal"`
	Name    string    `json:"name" yaml:"name" msgpack:"name" xml:"name" bson:"name"`
}

// SimpleOutput shares ID, Date and Name with SimpleModel; Decimal has no counterpart.
type SimpleOutput struct {
	ID   int       `json:"id" yaml:"id" msgpack:"id" xml:"id" bson:"id"`
	Date time.Time `json:"date" yaml:"date" msgpack:"date" xml:"date" bson:"date"`
	Name string    `json:"name" yaml:"name" msgpack:"name" xml:"name" bson:"name"`
}

// Models returns n models with sequential IDs, all stamped with at.
func Models(n int, at time.Time) []SimpleModel {
	return lo.Times(n, func(i int) SimpleModel {
		return SimpleModel{
			ID:      i,
			Date:    at,
			Decimal: float64(i),
			Name:    fmt.Sprintf("Item %d", i),
		}
	})
}
