package channel

import "tdslink/pkg/tds"

// BufferSize returns the read-buffer size for a connection. Each read against
// the underlying conn asks for at most one buffer's worth of data, so the
// buffer must track the negotiated packet size exactly: under-sizing wastes
// round trips, over-sizing wastes memory. When no packet size was negotiated
// yet (packetSize == 0) the version-dependent minimum default applies.
func BufferSize(tdsVersion, packetSize int) int {
    if packetSize == 0 {
        if tdsVersion >= tds.TDS70 {
            return tds.DefaultPacketSizeTDS70
        }
        return tds.MinPacketSize
    }
    return packetSize
}
