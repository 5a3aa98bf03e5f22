package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(0), "0 B"},
		{Bytes(1023), "1023 B"},
		{Bytes(1024), "1.00 KB"},
		{Bytes(1024 * 1024), "1.00 MB"},
		{Bytes(1024 * 1024 * 1024), "1.00 GB"},
		{Bytes(1 << 40), "1.00 TB"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
		})
	}
}

func TestBytes_WholeUnitsTruncate(t *testing.T) {
	assert.Equal(t, uint64(0), Bytes(MiB-1).WholeMB())
	assert.Equal(t, uint64(1), Bytes(MiB).WholeMB())
	assert.Equal(t, uint64(1), Bytes(2*MiB-1).WholeMB())
	assert.Equal(t, uint64(2), Bytes(3*GiB-1).WholeGB())
}

func TestBytes_Sub(t *testing.T) {
	assert.Equal(t, Bytes(5), Bytes(10).Sub(5))
	assert.Equal(t, Bytes(0), Bytes(5).Sub(10))
	assert.Equal(t, Bytes(0), Bytes(5).Sub(5))
}

func TestVolume_Used(t *testing.T) {
	v := Volume{Name: "/", Ready: true, Total: 100 * GiB, Free: 40 * GiB}
	assert.Equal(t, uint64(60), v.Used().WholeGB())

	// free larger than total must not wrap around
	odd := Volume{Total: GiB, Free: 2 * GiB}
	assert.Equal(t, Bytes(0), odd.Used())
}
