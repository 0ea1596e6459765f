package vclock

import (
	"bytes"
	"encoding/gob"
)

// DefaultShortenerName is used whenever a caller doesn't specify one.
const DefaultShortenerName = "NoOp"

// wireClock is the gob envelope: the shortened dots plus the name of the
// shortener that produced them, so FromBytes can recover the original
// identifiers even if the receiving replica prefers a different shortener.
type wireClock struct {
	Dots      map[string]Counter
	Shortener string
}

// Bytes gob-encodes a VClock[string] using the named shortener (empty
// string selects DefaultShortenerName) to compress actor identifiers
// before they hit the wire. This is one convenience wire format among
// many equally valid encodings of (actor, counter) pairs, not the only
// one a caller may use.
func Bytes(vc *VClock[string], shortenerName string) ([]byte, error) {
	if shortenerName == "" {
		shortenerName = DefaultShortenerName
	}
	shortener, err := GetShortenerFactory().Get(shortenerName)
	if err != nil {
		return nil, err
	}

	w := wireClock{Dots: map[string]Counter{}, Shortener: shortenerName}
	for a, c := range vc.dots {
		w.Dots[shortener.Shorten(a)] = c
	}

	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(&w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a clock encoded by Bytes, recovering original actor
// identifiers via whichever shortener the encoder named in the envelope.
func FromBytes(data []byte) (*VClock[string], error) {
	var w wireClock
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return nil, err
	}

	shortener, err := GetShortenerFactory().Get(w.Shortener)
	if err != nil {
		return nil, err
	}

	vc := New[string]()
	for short, c := range w.Dots {
		vc.Witness(shortener.Recover(short), c)
	}
	return vc, nil
}
