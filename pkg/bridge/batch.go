// Package bridge forwards blendshape batches to an OSC consumer over UDP and
// republishes inbound UDP text datagrams as application notifications.
package bridge

// Batch is one blendshape frame: channel weights keyed by channel name plus
// the destination port the frame is headed to. A Batch is built per forwarding
// call and owned by that call; it is never retained.
type Batch struct {
    Data map[string]float32 `json:"data" cbor:"data"`
    Port uint16             `json:"port" cbor:"port"`
}

// Notification topics produced/consumed by the bridge.
const (
    // TopicSendBlendshapes carries an encoded Batch to be forwarded as OSC.
    TopicSendBlendshapes = "send-blendshapes"
    // TopicUDPMessage carries the text of one inbound UDP datagram.
    TopicUDPMessage = "udp-message"
)
