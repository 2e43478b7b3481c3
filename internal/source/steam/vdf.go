package steam

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// KeyValues is a parsed Valve KeyValues block. Values are either strings or
// nested KeyValues. Keys keep their original case.
type KeyValues map[string]any

// Block returns the nested block under key, matched case-insensitively
func (kv KeyValues) Block(key string) (KeyValues, bool) {
	v, ok := kv.lookup(key)
	if !ok {
		return nil, false
	}
	block, ok := v.(KeyValues)
	return block, ok
}

// String returns the string value under key, matched case-insensitively
func (kv KeyValues) String(key string) string {
	v, _ := kv.lookup(key)
	s, _ := v.(string)
	return s
}

func (kv KeyValues) lookup(key string) (any, bool) {
	if v, ok := kv[key]; ok {
		return v, true
	}
	for k, v := range kv {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

var errUnexpectedEnd = errors.New("vdf: unexpected end of input")

// ParseKeyValues reads a text KeyValues document such as libraryfolders.vdf
// or an appmanifest_*.acf file.
func ParseKeyValues(r io.Reader) (KeyValues, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(splitTokens)

	p := &kvParser{scanner: scanner}
	root, err := p.block(true)
	if err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vdf: %w", err)
	}
	return root, nil
}

type kvParser struct {
	scanner *bufio.Scanner
}

func (p *kvParser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}

// block parses key/value pairs up to the closing brace, or end of input at top level
func (p *kvParser) block(top bool) (KeyValues, error) {
	kv := make(KeyValues)
	for {
		key, ok := p.next()
		if !ok {
			if top {
				return kv, nil
			}
			return nil, errUnexpectedEnd
		}
		if key == "}" {
			if top {
				return nil, errors.New("vdf: unbalanced closing brace")
			}
			return kv, nil
		}

		value, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("vdf: no value for key %q", key)
		}
		if value == "{" {
			nested, err := p.block(false)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			kv[key] = nested
			continue
		}
		kv[key] = value
	}
}

// splitTokens yields quoted strings (unquoted and unescaped), braces, and bare
// words. // comments run to the end of the line.
func splitTokens(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		if i+1 < len(data) && data[i] == '/' && data[i+1] == '/' {
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				return 0, nil, nil
			}
			i += nl + 1
			continue
		}
		break
	}

	if i >= len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		return 0, nil, nil
	}

	switch data[i] {
	case '{', '}':
		return i + 1, data[i : i+1], nil
	case '"':
		tok := make([]byte, 0, 32)
		for j := i + 1; j < len(data); j++ {
			switch c := data[j]; {
			case c == '\\' && j+1 < len(data):
				j++
				tok = append(tok, unescape(data[j]))
			case c == '"':
				return j + 1, tok, nil
			default:
				tok = append(tok, c)
			}
		}
		if atEOF {
			return 0, nil, errors.New("vdf: unterminated quoted string")
		}
		return 0, nil, nil
	}

	j := i
	for j < len(data) && !isSpace(data[j]) && data[j] != '"' && data[j] != '{' && data[j] != '}' {
		j++
	}
	if j == len(data) && !atEOF {
		return 0, nil, nil
	}
	return j, data[i:j], nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}
