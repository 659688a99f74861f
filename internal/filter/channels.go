package filter

import (
	"fmt"
	"strings"

	"github.com/dunamismax/pixlens/internal/raster"
)

// Channels selects which pixel channels a filter writes. Channels outside
// the set keep the source value.
type Channels uint8

const (
	ChannelRed Channels = 1 << iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha

	ChannelsRGB  = ChannelRed | ChannelGreen | ChannelBlue
	ChannelsRGBA = ChannelsRGB | ChannelAlpha
)

// ParseChannels reads a set such as "RGB" or "RA". An empty string selects RGB.
func ParseChannels(s string) (Channels, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ChannelsRGB, nil
	}

	var c Channels
	for _, r := range strings.ToUpper(s) {
		var bit Channels
		switch r {
		case 'R':
			bit = ChannelRed
		case 'G':
			bit = ChannelGreen
		case 'B':
			bit = ChannelBlue
		case 'A':
			bit = ChannelAlpha
		default:
			return 0, fmt.Errorf("%w: channel %q, available channels are R, G, B and A", raster.ErrInvalidParameter, r)
		}
		if c&bit != 0 {
			return 0, fmt.Errorf("%w: channel %q set multiple times", raster.ErrInvalidParameter, r)
		}
		c |= bit
	}
	return c, nil
}

func (c Channels) Has(bit Channels) bool {
	return c&bit != 0
}

func (c Channels) String() string {
	var b strings.Builder
	for _, ch := range []struct {
		bit  Channels
		name byte
	}{{ChannelRed, 'R'}, {ChannelGreen, 'G'}, {ChannelBlue, 'B'}, {ChannelAlpha, 'A'}} {
		if c.Has(ch.bit) {
			b.WriteByte(ch.name)
		}
	}
	return b.String()
}

// merge takes the selected channels from computed and the rest from orig.
func (c Channels) merge(orig, computed raster.Pixel) raster.Pixel {
	if c.Has(ChannelRed) {
		orig.R = computed.R
	}
	if c.Has(ChannelGreen) {
		orig.G = computed.G
	}
	if c.Has(ChannelBlue) {
		orig.B = computed.B
	}
	if c.Has(ChannelAlpha) {
		orig.A = computed.A
	}
	return orig
}
