package vclock

import "errors"

// inMemoryShortener shortens identifiers by applying a caller-supplied
// transform and caching the result, recovering the original via a reverse
// map. The cache only grows; actor-identifier retirement is deliberately out of
// scope for this collaborator.
type inMemoryShortener struct {
	name      string
	transform func(string) string
	fwd       map[string]string
	rev       map[string]string
}

// NewInMemoryShortener returns a named shortener whose Shorten applies
// transform and caches the mapping so Recover can invert it later, even if
// transform itself is lossy. It does not register the shortener with the
// factory.
func NewInMemoryShortener(name string, transform func(string) string) (*inMemoryShortener, error) {
	if name == "" {
		return nil, errors.New("shortener name must not be empty")
	}
	return &inMemoryShortener{
		name:      name,
		transform: transform,
		fwd:       map[string]string{},
		rev:       map[string]string{},
	}, nil
}

func (s *inMemoryShortener) Name() string { return s.name }

func (s *inMemoryShortener) Shorten(id string) string {
	if short, ok := s.fwd[id]; ok {
		return short
	}
	short := s.transform(id)
	s.fwd[id] = short
	s.rev[short] = id
	return short
}

func (s *inMemoryShortener) Recover(short string) string {
	if id, ok := s.rev[short]; ok {
		return id
	}
	return short
}

// factory is a singleton registry of IdentifierShortener instances, keyed
// by name, populated via Register and read from codec.go.
var factory *ShortenerFactory

func init() {
	factory = &ShortenerFactory{m: NewSynchronisedMap[string, IdentifierShortener](nil)}
	factory.Register(&noopShortener{})
}

// GetShortenerFactory returns the package-wide ShortenerFactory.
func GetShortenerFactory() *ShortenerFactory {
	return factory
}

// ErrShortenerMustNotBeNil is returned by Register when passed a nil shortener.
var ErrShortenerMustNotBeNil = errors.New("shortener cannot be nil")

// ShortenerFactory manages IdentifierShortener instances by name.
type ShortenerFactory struct {
	m *SynchronisedMap[string, IdentifierShortener]
}

// Register adds shortener under its own Name(), returning an error if a
// shortener with that name is already registered.
func (f *ShortenerFactory) Register(shortener IdentifierShortener) error {
	if shortener == nil {
		return ErrShortenerMustNotBeNil
	}
	_, err := f.m.Insert(shortener.Name(), shortener, true)
	return err
}

// Names returns the registered shortener names.
func (f *ShortenerFactory) Names() []string {
	return f.m.GetKeys()
}

// Get returns the shortener registered under name, or an error if none is.
func (f *ShortenerFactory) Get(name string) (IdentifierShortener, error) {
	return f.m.Get(name)
}
