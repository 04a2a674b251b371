package benchmarks

import (
	"strings"
	"testing"
	"time"

	"github.com/jinzhu/copier"
	"github.com/zoobzio/mapper"
	mappertest "github.com/zoobzio/mapper/testing"
	"github.com/zoobzio/mapper/transform"
)

const collectionSize = 10000

var sink []mappertest.SimpleOutput

func BenchmarkMapCollection(b *testing.B) {
	models := mappertest.Models(collectionSize, time.Now())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := mapper.MapCollection[mappertest.SimpleModel, mappertest.SimpleOutput](models)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
}

func BenchmarkMapCollection_ColdCache(b *testing.B) {
	models := mappertest.Models(collectionSize, time.Now())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := mapper.New()
		out, err := mapper.MapCollectionWith[mappertest.SimpleModel, mappertest.SimpleOutput](m, models)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
}

func BenchmarkMapCollection_WithCallbacks(b *testing.B) {
	models := mappertest.Models(collectionSize, time.Now())
	upper := func(_ mappertest.SimpleModel, dst *mappertest.SimpleOutput) error {
		dst.Name = strings.ToUpper(dst.Name)
		return nil
	}
	mask := transform.Mask[mappertest.SimpleModel, mappertest.SimpleOutput]("Name", transform.NameMasker())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := mapper.MapCollection(models, upper, mask)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
}

func BenchmarkMap_Single(b *testing.B) {
	model := mappertest.Models(1, time.Now())[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mapper.Map[mappertest.SimpleModel, mappertest.SimpleOutput](model)
	}
}

// BenchmarkCopier_Collection is the jinzhu/copier baseline for the same workload.
func BenchmarkCopier_Collection(b *testing.B) {
	models := mappertest.Models(collectionSize, time.Now())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out []mappertest.SimpleOutput
		if err := copier.Copy(&out, &models); err != nil {
			b.Fatal(err)
		}
		sink = out
	}
}
