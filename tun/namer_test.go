package tun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextName(t *testing.T) {
	tests := []struct {
		names    []string
		expected string
	}{
		{nil, "tun0"},
		{[]string{"lo", "eth0"}, "tun0"},
		{[]string{"tun0"}, "tun1"},
		{[]string{"tun0", "tun2"}, "tun1"},
		{[]string{"tun2", "tun1", "tun0"}, "tun3"},
		{[]string{"tun1", "tun2"}, "tun0"},
		{[]string{"tun00"}, "tun1"},
		{[]string{"tun", "tunx", "tun0a", "mytun0", "tun-1"}, "tun0"},
		{[]string{"utun0", "tun0", "tap1"}, "tun1"},
		{[]string{"tun0", "tun99999999999999999999"}, "tun1"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, NextName(tc.names), "names=%v", tc.names)
	}
}

func TestNextNameContiguous(t *testing.T) {
	var names []string
	for i := 0; i < 20; i++ {
		name := NextName(names)
		assert.NotContains(t, names, name)
		names = append(names, name)
	}
	assert.Equal(t, "tun19", names[19])
}
