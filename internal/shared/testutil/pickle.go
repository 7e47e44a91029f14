package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"spectrumloader/pkg/contracts/domain"
)

// Tuple marks a sequence that should be pickled as a tuple instead of a list.
type Tuple []any

// pickle opcodes up to protocol 3
const (
	opProto         = 0x80
	opStop          = '.'
	opMark          = '('
	opEmptyDict     = '}'
	opSetItems      = 'u'
	opEmptyList     = ']'
	opAppends       = 'e'
	opEmptyTuple    = ')'
	opTuple         = 't'
	opBinUnicode    = 'X'
	opBinInt1       = 'K'
	opBinInt        = 'J'
	opLong1         = 0x8a
	opBinFloat      = 'G'
	opShortBinBytes = 'C'
	opBinBytes      = 'B'
	opNewTrue       = 0x88
	opNewFalse      = 0x89
	opNone          = 'N'
	opGlobal        = 'c'
	opTuple2        = 0x86
	opReduce        = 'R'
)

// EncodePickle serializes v with pickle protocol 3, the format the
// instrument's dumper writes. Supported values are nil, bool, int, int64,
// float64, string, []byte, []any, Tuple, map[string]any and
// domain.RawRecord. Map keys are written in
// sorted order so fixtures are byte-stable.
func EncodePickle(v any) ([]byte, error) {
	return EncodePickleProtocol(v, 3)
}

// EncodePickleProtocol serializes v with protocol 2 or 3. Protocol 2 has no
// bytes opcodes, so byte strings are written the way Python 3 writes them:
// a call to _codecs.encode on their latin-1 text, or to bytes() when empty.
func EncodePickleProtocol(v any, protocol byte) ([]byte, error) {
	if protocol != 2 && protocol != 3 {
		return nil, fmt.Errorf("unsupported pickle protocol %d", protocol)
	}
	e := &encoder{protocol: protocol}
	e.buf.WriteByte(opProto)
	e.buf.WriteByte(protocol)
	if err := e.encodeValue(v); err != nil {
		return nil, err
	}
	e.buf.WriteByte(opStop)
	return e.buf.Bytes(), nil
}

// MustEncodePickle is EncodePickle that fails the test on error.
func MustEncodePickle(t testing.TB, v any) []byte {
	t.Helper()
	data, err := EncodePickle(v)
	if err != nil {
		t.Fatalf("encode pickle: %v", err)
	}
	return data
}

// WritePickle pickles v into dir/name and returns the full path.
func WritePickle(t testing.TB, dir, name string, v any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, MustEncodePickle(t, v), 0644); err != nil {
		t.Fatalf("write pickle: %v", err)
	}
	return path
}

type encoder struct {
	buf      bytes.Buffer
	protocol byte
}

func (e *encoder) encodeValue(v any) error {
	buf := &e.buf
	switch x := v.(type) {
	case nil:
		buf.WriteByte(opNone)
	case bool:
		if x {
			buf.WriteByte(opNewTrue)
		} else {
			buf.WriteByte(opNewFalse)
		}
	case int:
		encodeInt(buf, int64(x))
	case int64:
		encodeInt(buf, x)
	case float64:
		buf.WriteByte(opBinFloat)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(x))
		buf.Write(b[:])
	case string:
		buf.WriteByte(opBinUnicode)
		writeUint32(buf, uint32(len(x)))
		buf.WriteString(x)
	case []byte:
		if e.protocol < 3 {
			e.encodeLegacyBytes(x)
			return nil
		}
		if len(x) < 256 {
			buf.WriteByte(opShortBinBytes)
			buf.WriteByte(byte(len(x)))
		} else {
			buf.WriteByte(opBinBytes)
			writeUint32(buf, uint32(len(x)))
		}
		buf.Write(x)
	case []any:
		buf.WriteByte(opEmptyList)
		if len(x) == 0 {
			return nil
		}
		buf.WriteByte(opMark)
		for _, item := range x {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}
		buf.WriteByte(opAppends)
	case Tuple:
		if len(x) == 0 {
			buf.WriteByte(opEmptyTuple)
			return nil
		}
		buf.WriteByte(opMark)
		for _, item := range x {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}
		buf.WriteByte(opTuple)
	case map[string]any:
		buf.WriteByte(opEmptyDict)
		if len(x) == 0 {
			return nil
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte(opMark)
		for _, k := range keys {
			if err := e.encodeValue(k); err != nil {
				return err
			}
			if err := e.encodeValue(x[k]); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		buf.WriteByte(opSetItems)
	case domain.RawRecord:
		return e.encodeValue(map[string]any(x))
	default:
		return fmt.Errorf("cannot pickle %T", v)
	}
	return nil
}

func (e *encoder) encodeLegacyBytes(b []byte) {
	buf := &e.buf
	if len(b) == 0 {
		buf.WriteString("c__builtin__\nbytes\n")
		buf.WriteByte(opEmptyTuple)
		buf.WriteByte(opReduce)
		return
	}
	text := make([]rune, len(b))
	for i, c := range b {
		text[i] = rune(c)
	}
	buf.WriteByte(opGlobal)
	buf.WriteString("_codecs\nencode\n")
	_ = e.encodeValue(string(text))
	_ = e.encodeValue("latin1")
	buf.WriteByte(opTuple2)
	buf.WriteByte(opReduce)
}

func encodeInt(buf *bytes.Buffer, n int64) {
	switch {
	case n >= 0 && n <= math.MaxUint8:
		buf.WriteByte(opBinInt1)
		buf.WriteByte(byte(n))
	case n >= math.MinInt32 && n <= math.MaxInt32:
		buf.WriteByte(opBinInt)
		writeUint32(buf, uint32(int32(n)))
	default:
		buf.WriteByte(opLong1)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		buf.WriteByte(8)
		buf.Write(b[:])
	}
}

func writeUint32(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}
