package channel

import (
    "testing"

    "tdslink/pkg/tds"
)

func TestBufferSizeDefaults(t *testing.T) {
    cases := []struct {
        name    string
        version int
        packet  int
        want    int
    }{
        {"modern default", tds.TDS70, 0, tds.DefaultPacketSizeTDS70},
        {"tds80 default", tds.TDS80, 0, tds.DefaultPacketSizeTDS70},
        {"legacy default", tds.TDS50, 0, tds.MinPacketSize},
        {"tds42 default", tds.TDS42, 0, tds.MinPacketSize},
        {"explicit wins modern", tds.TDS80, 1024, 1024},
        {"explicit wins legacy", tds.TDS42, 1024, 1024},
        {"explicit max", tds.TDS80, tds.MaxPacketSize, tds.MaxPacketSize},
    }
    for _, tc := range cases {
        if got := BufferSize(tc.version, tc.packet); got != tc.want {
            t.Fatalf("%s: BufferSize(%d, %d) = %d, want %d", tc.name, tc.version, tc.packet, got, tc.want)
        }
    }
}
