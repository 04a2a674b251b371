// Package codec encodes fixture and result files for the benchmark harness.
package codec

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates no codec is registered under the requested name.
var ErrUnknownFormat = errors.New("unknown format")

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

type funcCodec struct {
	contentType string
	marshal     func(any) ([]byte, error)
	unmarshal   func([]byte, any) error
}

func (c *funcCodec) ContentType() string { return c.contentType }

func (c *funcCodec) Marshal(v any) ([]byte, error) { return c.marshal(v) }

func (c *funcCodec) Unmarshal(data []byte, v any) error { return c.unmarshal(data, v) }

var codecs = map[string]Codec{
	"json":    &funcCodec{"application/json", json.Marshal, json.Unmarshal},
	"xml":     &funcCodec{"application/xml", xml.Marshal, xml.Unmarshal},
	"yaml":    &funcCodec{"application/yaml", yaml.Marshal, yaml.Unmarshal},
	"msgpack": &funcCodec{"application/msgpack", msgpack.Marshal, msgpack.Unmarshal},
	"bson":    &funcCodec{"application/bson", bson.Marshal, bson.Unmarshal},
}

// ByName returns the codec registered under name (case-insensitive).
func ByName(name string) (Codec, error) {
	if c, ok := codecs[strings.ToLower(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
