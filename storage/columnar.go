package storage

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/ESPR3SS0/Taggin/store"
)

// Columnar file layout:
//
//	magic (8 bytes)
//	5 column blocks, each [compressed size uint32 LE][zstd data]:
//	  timestamps (int64 unix nanos), levels (uint8),
//	  names, tags, messages (strings as [len uint32][bytes]...)
//	footer: [row count uint32][min ts int64][max ts int64]
var magicHeader = []byte("TAGGIN01")

const footerSize = 20

// ErrInvalidColumnar is returned for files that do not carry the columnar
// magic header or whose columns are inconsistent.
var ErrInvalidColumnar = errors.New("invalid columnar log file")

// SaveColumnar writes records to a .tagc file. Columnar blocks are not
// append-friendly, so append merges the existing file's records and
// rewrites; the swap is done through a temp file and rename.
func SaveColumnar(path string, records []store.Record, append bool) error {
	if append {
		existing, err := LoadColumnar(path)
		if err != nil && !os.IsNotExist(errors.Cause(err)) {
			return err
		}
		records = concatRecords(existing, records)
	}

	tmp := path + ".tmp"
	if err := writeColumnar(tmp, records); err != nil {
		os.Remove(tmp)
		return err
	}
	return errors.Wrap(os.Rename(tmp, path), "rename columnar log")
}

func concatRecords(a, b []store.Record) []store.Record {
	out := make([]store.Record, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func writeColumnar(path string, records []store.Record) error {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return errors.Wrap(err, "zstd encoder")
	}
	defer enc.Close()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create columnar log")
	}
	defer f.Close()

	if _, err := f.Write(magicHeader); err != nil {
		return errors.Wrap(err, "write header")
	}

	n := len(records)
	tsCol := make([]int64, n)
	lvlCol := make([]uint8, n)
	nameCol := make([]string, n)
	tagCol := make([]string, n)
	msgCol := make([]string, n)
	for i, rec := range records {
		tsCol[i] = rec.Time.UnixNano()
		lvlCol[i] = uint8(rec.Level)
		nameCol[i] = rec.Name
		tagCol[i] = rec.Tag
		msgCol[i] = rec.Message
	}

	if err := writeBlock(f, enc, int64ColBytes(tsCol)); err != nil {
		return err
	}
	if err := writeBlock(f, enc, lvlCol); err != nil {
		return err
	}
	for _, col := range [][]string{nameCol, tagCol, msgCol} {
		if err := writeBlock(f, enc, stringColBytes(col)); err != nil {
			return err
		}
	}

	var minTs, maxTs int64
	if n > 0 {
		minTs, maxTs = tsCol[0], tsCol[0]
		for _, ts := range tsCol[1:] {
			if ts < minTs {
				minTs = ts
			}
			if ts > maxTs {
				maxTs = ts
			}
		}
	}
	footer := make([]byte, footerSize)
	binary.LittleEndian.PutUint32(footer[0:4], uint32(n))
	binary.LittleEndian.PutUint64(footer[4:12], uint64(minTs))
	binary.LittleEndian.PutUint64(footer[12:20], uint64(maxTs))
	if _, err := f.Write(footer); err != nil {
		return errors.Wrap(err, "write footer")
	}
	return nil
}

func writeBlock(f *os.File, enc *zstd.Encoder, raw []byte) error {
	compressed := enc.EncodeAll(raw, make([]byte, 0, len(raw)))
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(len(compressed)))
	if _, err := f.Write(size); err != nil {
		return errors.Wrap(err, "write block size")
	}
	_, err := f.Write(compressed)
	return errors.Wrap(err, "write block")
}

func int64ColBytes(data []int64) []byte {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return buf
}

func stringColBytes(data []string) []byte {
	buf := new(bytes.Buffer)
	for _, s := range data {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		buf.Write(l[:])
		buf.WriteString(s)
	}
	return buf.Bytes()
}

// LoadColumnar reads a .tagc file written by SaveColumnar.
func LoadColumnar(path string) ([]store.Record, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decoder")
	}
	defer dec.Close()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open columnar log")
	}
	defer f.Close()

	header := make([]byte, len(magicHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, errors.Wrap(ErrInvalidColumnar, "short header")
	}
	if !bytes.Equal(header, magicHeader) {
		return nil, errors.Wrap(ErrInvalidColumnar, "bad magic")
	}

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat columnar log")
	}
	if info.Size() < int64(len(magicHeader)+footerSize) {
		return nil, errors.Wrap(ErrInvalidColumnar, "file too small")
	}
	footer := make([]byte, footerSize)
	if _, err := f.ReadAt(footer, info.Size()-footerSize); err != nil {
		return nil, errors.Wrap(err, "read footer")
	}
	rowCount := int(binary.LittleEndian.Uint32(footer[0:4]))

	tsData, err := readBlock(f, dec)
	if err != nil {
		return nil, err
	}
	lvlData, err := readBlock(f, dec)
	if err != nil {
		return nil, err
	}
	nameData, err := readBlock(f, dec)
	if err != nil {
		return nil, err
	}
	tagData, err := readBlock(f, dec)
	if err != nil {
		return nil, err
	}
	msgData, err := readBlock(f, dec)
	if err != nil {
		return nil, err
	}

	tsCol := bytesToInt64s(tsData)
	nameCol := bytesToStrings(nameData)
	tagCol := bytesToStrings(tagData)
	msgCol := bytesToStrings(msgData)

	if rowCount != len(tsCol) || rowCount != len(lvlData) ||
		rowCount != len(nameCol) || rowCount != len(tagCol) || rowCount != len(msgCol) {
		return nil, errors.Wrap(ErrInvalidColumnar, "column length mismatch")
	}

	records := make([]store.Record, rowCount)
	for i := 0; i < rowCount; i++ {
		records[i] = store.Record{
			Time:    time.Unix(0, tsCol[i]),
			Level:   store.Level(lvlData[i]),
			Name:    nameCol[i],
			Tag:     tagCol[i],
			Message: msgCol[i],
		}
	}
	return records, nil
}

func readBlock(r io.Reader, dec *zstd.Decoder) ([]byte, error) {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, errors.Wrap(ErrInvalidColumnar, "short block size")
	}
	size := binary.LittleEndian.Uint32(sizeBuf[:])
	compressed := make([]byte, size)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, errors.Wrap(ErrInvalidColumnar, "short block")
	}
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decompress block")
	}
	return raw, nil
}

func bytesToInt64s(data []byte) []int64 {
	out := make([]int64, len(data)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out
}

func bytesToStrings(data []byte) []string {
	var out []string
	for len(data) >= 4 {
		l := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < l {
			break
		}
		out = append(out, string(data[:l]))
		data = data[l:]
	}
	return out
}
