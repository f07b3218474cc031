// Package codec provides the payload codecs used for batch notifications.
package codec

// Codec marshals and unmarshals notification payloads. Implementations must
// be deterministic and safe for concurrent use.
type Codec interface {
    ContentType() string
    Marshal(v any) ([]byte, error)
    Unmarshal(data []byte, v any) error
}

// Content types understood by the bridge.
const (
    ContentTypeJSON = "application/json"
    ContentTypeCBOR = "application/cbor"
)

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry constructs a registry preloaded with the JSON codec. CBOR has
// an initialization error path and is added explicitly via Register(CBOR()).
func NewRegistry() *Registry {
    r := &Registry{byType: make(map[string]Codec)}
    r.Register(JSON())
    return r
}

// Register adds a codec, replacing any prior codec for the same content type.
func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns the codec for contentType, or nil when none is registered.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }
