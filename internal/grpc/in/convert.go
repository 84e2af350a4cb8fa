package in

import "time"

// timeFormat is the wire representation of every timestamp field. RFC3339
// keeps the JSON codec's messages readable over the wire without a
// generated protobuf Timestamp type.
const timeFormat = time.RFC3339Nano
