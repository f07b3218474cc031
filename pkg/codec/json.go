package codec

import "encoding/json"

type jsonCodec struct{}

// JSON returns the JSON codec (RFC 8259). This is the shape the web frontend
// emits: {"data":{"jawOpen":0.42,...},"port":8883}.
func JSON() Codec { return jsonCodec{} }

func (jsonCodec) ContentType() string { return ContentTypeJSON }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(d []byte, v any) error { return json.Unmarshal(d, v) }
