package nav

import (
	"net/url"
	"strings"
	"sync"
)

// URLLocator is a query-string backed Locator. Its encoded form can be
// shared and parsed back, so a session can be resumed at the same panel.
type URLLocator struct {
	mu     sync.Mutex
	values url.Values
}

// ParseLocator builds a URLLocator from an encoded query string such as
// "tab=books". Malformed input yields an empty locator.
func ParseLocator(encoded string) *URLLocator {
	values, err := url.ParseQuery(strings.TrimPrefix(encoded, "?"))
	if err != nil {
		values = url.Values{}
	}
	return &URLLocator{values: values}
}

func (l *URLLocator) Get(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values.Get(key)
}

func (l *URLLocator) Set(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values.Set(key, value)
}

// Encode renders the locator back to its shareable query-string form.
func (l *URLLocator) Encode() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values.Encode()
}
