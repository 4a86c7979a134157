package spincolor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrPalette is wrapped by the errors returned when reading palette files.
var ErrPalette = errors.New("spincolor: invalid palette")

type xmlChannel struct {
	Kind  string `xml:"kind,attr"`
	Value string `xml:"value,attr"`
}

type xmlGenerator struct {
	Title    string       `xml:"title,attr"`
	Space    string       `xml:"space,attr"`
	Channels []xmlChannel `xml:"channel"`
}

type xmlPalette struct {
	XMLName    xml.Name       `xml:"palette"`
	Generators []xmlGenerator `xml:"generator"`
}

func (c xmlChannel) behavior() (ChannelBehavior, error) {
	kind, ok := parseBehaviorKind(strings.TrimSpace(c.Kind))
	if !ok {
		return ChannelBehavior{}, fmt.Errorf("%w: unknown channel kind %q", ErrPalette, c.Kind)
	}
	if kind != FixedValue {
		return ChannelBehavior{Kind: kind}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return ChannelBehavior{}, fmt.Errorf("%w: fixed channel value: %s", ErrPalette, err)
	}
	return Fixed(v), nil
}

// ReadPalette reads generators from an XML document such as
//
//	<palette>
//	  <generator title="Ember" space="hsv">
//	    <channel kind="fixed" value="0.02"/>
//	    <channel kind="radius-outward"/>
//	    <channel kind="angle-up-down"/>
//	  </generator>
//	</palette>
//
// Titles must be unique (ignoring case) and non empty.
func ReadPalette(stream io.Reader) ([]Generator, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var doc xmlPalette
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPalette, err)
	}
	out := make([]Generator, 0, len(doc.Generators))
	for _, xg := range doc.Generators {
		title := strings.TrimSpace(xg.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: generator without title", ErrPalette)
		}
		if _, dup := Lookup(out, title); dup && len(out) > 0 {
			return nil, fmt.Errorf("%w: duplicate generator %q", ErrPalette, title)
		}
		space, ok := parseSpace(strings.ToLower(strings.TrimSpace(xg.Space)))
		if !ok {
			return nil, fmt.Errorf("%w: generator %q: unknown space %q", ErrPalette, title, xg.Space)
		}
		if len(xg.Channels) != 3 {
			return nil, fmt.Errorf("%w: generator %q: expected 3 channels, got %d", ErrPalette, title, len(xg.Channels))
		}
		var channels [3]ChannelBehavior
		for i, c := range xg.Channels {
			b, err := c.behavior()
			if err != nil {
				return nil, fmt.Errorf("generator %q: %w", title, err)
			}
			channels[i] = b
		}
		out = append(out, Generator{Title: title, Model: ColorModel{Space: space, Channels: channels}})
	}
	return out, nil
}

// ReadPaletteFile reads the named palette file.
func ReadPaletteFile(file string) ([]Generator, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadPalette(fin)
}

// Merge appends to `base` the generators of `extra`, replacing
// the ones of `base` with the same title.
func Merge(base, extra []Generator) []Generator {
	out := append([]Generator(nil), base...)
	for _, g := range extra {
		replaced := false
		for i := range out {
			if _, same := Lookup([]Generator{out[i]}, g.Title); same {
				out[i], replaced = g, true
				break
			}
		}
		if !replaced {
			out = append(out, g)
		}
	}
	return out
}
