// Package extracttest builds synthetic FLAC files for tests.
//
// The fixtures carry real STREAMINFO, VORBIS_COMMENT, and PICTURE blocks
// so the production probe path parses them like files ripped from a CD,
// without shipping binary test assets.
package extracttest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FLACFixture describes a synthetic FLAC file.
type FLACFixture struct {
	Title        string
	Artist       string
	Album        string
	TotalSamples uint64 // at 44.1kHz; 154350 = 3.5 seconds
	Picture      []byte
	PictureMIME  string
	WithComment  bool
}

// BuildFLAC constructs a minimal FLAC byte stream: STREAMINFO, an optional
// VORBIS_COMMENT block, and an optional PICTURE block.
func BuildFLAC(f FLACFixture) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")

	var blocks [][]byte
	var blockTypes []byte

	blocks = append(blocks, streamInfoBlock(f.TotalSamples))
	blockTypes = append(blockTypes, 0x00) // STREAMINFO

	if f.WithComment {
		blocks = append(blocks, vorbisCommentBlock(f.Title, f.Artist, f.Album))
		blockTypes = append(blockTypes, 0x04) // VORBIS_COMMENT
	}
	if f.Picture != nil {
		blocks = append(blocks, pictureBlock(f.Picture, f.PictureMIME))
		blockTypes = append(blockTypes, 0x06) // PICTURE
	}

	for i, block := range blocks {
		header := blockTypes[i]
		if i == len(blocks)-1 {
			header |= 0x80 // last-metadata-block flag
		}
		buf.WriteByte(header)
		buf.WriteByte(byte(len(block) >> 16))
		buf.WriteByte(byte(len(block) >> 8))
		buf.WriteByte(byte(len(block)))
		buf.Write(block)
	}

	return buf.Bytes()
}

// WriteFLAC writes a fixture into dir and returns its path.
func WriteFLAC(t *testing.T, dir, name string, f FLACFixture) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, BuildFLAC(f), 0o600))
	return path
}

// streamInfoBlock builds a 34-byte STREAMINFO body: 44.1kHz, stereo, 16-bit.
func streamInfoBlock(totalSamples uint64) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint16(4096)) // min block size
	binary.Write(buf, binary.BigEndian, uint16(4096)) // max block size
	buf.Write(make([]byte, 3))                        // min frame size
	buf.Write(make([]byte, 3))                        // max frame size

	// [sample_rate(20)] [channels-1(3)] [bits-1(5)] [total_samples(36)]
	packed := (uint64(44100) << 44) | (uint64(1) << 41) | (uint64(15) << 36) | totalSamples
	binary.Write(buf, binary.BigEndian, packed)

	buf.Write(make([]byte, 16)) // MD5 signature
	return buf.Bytes()
}

func vorbisCommentBlock(title, artist, album string) []byte {
	buf := &bytes.Buffer{}

	vendor := "soundleaf-test"
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)

	var comments []string
	if title != "" {
		comments = append(comments, "TITLE="+title)
	}
	if artist != "" {
		comments = append(comments, "ARTIST="+artist)
	}
	if album != "" {
		comments = append(comments, "ALBUM="+album)
	}

	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, comment := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(comment)))
		buf.WriteString(comment)
	}

	return buf.Bytes()
}

func pictureBlock(data []byte, mime string) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(3)) // picture type: front cover
	binary.Write(buf, binary.BigEndian, uint32(len(mime)))
	buf.WriteString(mime)
	binary.Write(buf, binary.BigEndian, uint32(0)) // description length
	binary.Write(buf, binary.BigEndian, uint32(0)) // width
	binary.Write(buf, binary.BigEndian, uint32(0)) // height
	binary.Write(buf, binary.BigEndian, uint32(0)) // color depth
	binary.Write(buf, binary.BigEndian, uint32(0)) // indexed colors
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}
