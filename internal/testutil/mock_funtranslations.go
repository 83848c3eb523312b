package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockFunTranslations is a configurable stand-in for the FunTranslations
// translate endpoints. It can be toggled into a rate-limited state and
// tracks which style and text it last received.
type MockFunTranslations struct {
	server *httptest.Server

	mu           sync.RWMutex
	translations map[string]map[string]string // style -> source text -> translation
	rateLimited  bool
	retryAfter   int
	remaining    int
	requestCount int
	lastStyle    string
	lastText     string
}

// NewMockFunTranslations creates a mock server. Texts without a
// registered translation are echoed back with a style marker.
func NewMockFunTranslations() *MockFunTranslations {
	mock := &MockFunTranslations{
		translations: make(map[string]map[string]string),
		remaining:    -1,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server base URL.
func (m *MockFunTranslations) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockFunTranslations) Close() {
	m.server.Close()
}

// SetTranslation registers a translation for one style and source text.
func (m *MockFunTranslations) SetTranslation(style, text, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.translations[style] == nil {
		m.translations[style] = make(map[string]string)
	}
	m.translations[style][text] = translated
}

// SetRateLimited toggles 429 responses. retryAfter seconds are reported
// in the Retry-After header when positive.
func (m *MockFunTranslations) SetRateLimited(limited bool, retryAfter int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited = limited
	m.retryAfter = retryAfter
}

// SetRemaining sets the X-RateLimit-Remaining header value reported on
// successful responses. Pass -1 to omit the header.
func (m *MockFunTranslations) SetRemaining(remaining int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remaining = remaining
}

// RequestCount returns the total number of requests served.
func (m *MockFunTranslations) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// LastStyle returns the style of the last request served.
func (m *MockFunTranslations) LastStyle() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastStyle
}

// LastText returns the source text of the last request served.
func (m *MockFunTranslations) LastText() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastText
}

func (m *MockFunTranslations) handle(w http.ResponseWriter, r *http.Request) {
	style := strings.TrimPrefix(r.URL.Path, "/translate/")

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requestCount++
	m.lastStyle = style
	m.lastText = req.Text
	limited := m.rateLimited
	retryAfter := m.retryAfter
	remaining := m.remaining
	translated, ok := m.translations[style][req.Text]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if limited {
		if retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		}
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    429,
				"message": "Too Many Requests: Rate limit of 5 requests per hour exceeded.",
			},
		})
		return
	}

	if remaining >= 0 {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	}

	if !ok {
		translated = fmt.Sprintf("[%s] %s", style, req.Text)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": map[string]int{"total": 1},
		"contents": map[string]string{
			"translated":  translated,
			"text":        req.Text,
			"translation": style,
		},
	})
}
