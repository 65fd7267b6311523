package mesh

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/polymesh/engine/core"
)

// MeshChannel selects vertex attribute streams. Values combine as a bit mask.
type MeshChannel uint16

const (
	ChannelPosition MeshChannel = 1 << iota
	ChannelNormal
	ChannelColor
	ChannelTangent
	ChannelUV0
	ChannelUV1
	ChannelUV2
	ChannelUV3

	ChannelNone MeshChannel = 0
	ChannelAll  MeshChannel = 0xFF
)

var channelNames = []struct {
	channel MeshChannel
	name    string
}{
	{ChannelPosition, "position"},
	{ChannelNormal, "normal"},
	{ChannelColor, "color"},
	{ChannelTangent, "tangent"},
	{ChannelUV0, "uv0"},
	{ChannelUV1, "uv1"},
	{ChannelUV2, "uv2"},
	{ChannelUV3, "uv3"},
}

// Has reports whether every bit of other is set in c.
func (c MeshChannel) Has(other MeshChannel) bool {
	return c&other == other
}

// uvChannels lists the UV channel flags in storage order.
var uvChannels = [UVChannelCount]MeshChannel{ChannelUV0, ChannelUV1, ChannelUV2, ChannelUV3}

func (c MeshChannel) String() string {
	if c == ChannelAll {
		return "all"
	}
	if c == ChannelNone {
		return "none"
	}
	var parts []string
	for _, cn := range channelNames {
		if c.Has(cn.channel) {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseChannels parses a "|" or "," separated list of channel names, or "all".
func ParseChannels(s string) (MeshChannel, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "all" {
		return ChannelAll, nil
	}
	var out MeshChannel
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		found := false
		for _, cn := range channelNames {
			if cn.name == part {
				out |= cn.channel
				found = true
				break
			}
		}
		if !found {
			return ChannelNone, fmt.Errorf("%w: %q", core.ErrUnknownChannel, part)
		}
	}
	return out, nil
}
