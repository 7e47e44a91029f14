package loader

import (
	"fmt"
	"io"
	"math/big"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/pkg/contracts/domain"
)

// decodeRecord unpickles r and normalizes the result into a RawRecord.
func decodeRecord(r io.Reader) (domain.RawRecord, error) {
	u := pickle.NewUnpickler(r)
	u.FindClass = findClass
	value, err := u.Load()
	if err != nil {
		return nil, apperrors.NewDeserializationError("cannot unpickle dump", err)
	}

	normalized, err := normalize(value, "")
	if err != nil {
		return nil, err
	}
	fields, ok := normalized.(map[string]any)
	if !ok {
		return nil, apperrors.NewDeserializationError(
			fmt.Sprintf("dump holds %T, want a dict at the top level", value), nil)
	}
	return domain.RawRecord(fields), nil
}

// pickleFunc adapts a Go function to a callable pickle global.
type pickleFunc func(args ...any) (any, error)

func (f pickleFunc) Call(args ...any) (any, error) { return f(args...) }

// findClass resolves the globals Python 3 emits for bytes values under
// protocol 2, which has no bytes opcodes. Anything else stays a generic
// class and fails if it is called.
func findClass(module, name string) (any, error) {
	switch module + "." + name {
	case "_codecs.encode":
		return pickleFunc(encodeLatin1), nil
	case "__builtin__.bytes", "builtins.bytes":
		return pickleFunc(emptyBytes), nil
	}
	return types.NewGenericClass(module, name), nil
}

// encodeLatin1 implements _codecs.encode(text, "latin1").
func encodeLatin1(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("_codecs.encode: want 2 arguments, got %d", len(args))
	}
	text, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("_codecs.encode: text is %T, want str", args[0])
	}
	switch encoding, _ := args[1].(string); encoding {
	case "latin1", "latin-1", "iso-8859-1":
	default:
		return nil, fmt.Errorf("_codecs.encode: unsupported encoding %v", args[1])
	}

	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xff {
			return nil, fmt.Errorf("_codecs.encode: %q is not latin-1", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// emptyBytes implements bytes() with no arguments.
func emptyBytes(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("bytes: want no arguments, got %d", len(args))
	}
	return []byte{}, nil
}

// normalize converts gopickle containers into plain Go values: dicts to
// map[string]any, lists and tuples to []any, integers to int64. Other
// values are kept as they are.
func normalize(v any, path string) (any, error) {
	switch x := v.(type) {
	case *types.Dict:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			key, ok := k.(string)
			if !ok {
				return nil, apperrors.NewDeserializationError(
					fmt.Sprintf("dict key %v at %s is %T, want str", k, pathOrRoot(path), k), nil)
			}
			item, _ := x.Get(k)
			value, err := normalize(item, joinKey(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = value
		}
		return out, nil
	case *types.List:
		return normalizeSlice(*x, path)
	case *types.Tuple:
		return normalizeSlice(*x, path)
	case []any:
		return normalizeSlice(x, path)
	case int:
		return int64(x), nil
	case *big.Int:
		if !x.IsInt64() {
			return nil, apperrors.NewDeserializationError(
				fmt.Sprintf("integer at %s overflows int64", pathOrRoot(path)), nil)
		}
		return x.Int64(), nil
	}
	return v, nil
}

func normalizeSlice(items []any, path string) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		value, err := normalize(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "top level"
	}
	return path
}
