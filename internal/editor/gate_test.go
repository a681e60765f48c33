package editor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func pngFile(name string, size int) LocalFile {
	data := make([]byte, size)
	copy(data, pngMagic)
	return LocalFile{Name: name, Data: data}
}

func textFile(name string) LocalFile {
	return LocalFile{Name: name, Data: []byte("not an image at all")}
}

func TestCheckCapacity(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		incoming    int
		wantReject  bool
		wantAllowed int
	}{
		{"empty store full batch", 0, 3, false, 0},
		{"fits exactly", 2, 1, false, 0},
		{"one over", 2, 2, true, 1},
		{"full store", 3, 1, true, 0},
		{"over-full store", 3, 2, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := CheckCapacity(tt.current, tt.incoming)
			if !tt.wantReject {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, RejectLimit, rej.Reason)
			assert.Equal(t, tt.wantAllowed, rej.AllowedMore)
		})
	}
}

func TestCheckFile_SniffsContent(t *testing.T) {
	assert.Nil(t, CheckFile(pngFile("photo.png", 1024)))

	// A text payload with an image extension is still rejected.
	rej := CheckFile(LocalFile{Name: "fake.png", Data: []byte("plain text")})
	require.NotNil(t, rej)
	assert.Equal(t, RejectType, rej.Reason)
	assert.Equal(t, "fake.png", rej.Name)
}

func TestCheckFile_SizeCeiling(t *testing.T) {
	at := LocalFile{Name: "at-limit.png", Data: bytes.Join([][]byte{pngMagic, make([]byte, MaxFileSize-len(pngMagic))}, nil)}
	assert.Nil(t, CheckFile(at))

	over := LocalFile{Name: "big.png", Data: bytes.Join([][]byte{pngMagic, make([]byte, MaxFileSize-len(pngMagic)+1)}, nil)}
	rej := CheckFile(over)
	require.NotNil(t, rej)
	assert.Equal(t, RejectSize, rej.Reason)
}
