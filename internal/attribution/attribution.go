// Package attribution captures marketing parameters from the landing URL once and
// forwards them with analytics events and the scoring API request.
package attribution

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/storage"
)

const storageKey = "wellnessEligibilityAttribution"

// KnownKeys are forwarded as first-class parameters; anything else stored is passed through as-is.
var KnownKeys = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"gclid",
	"fbclid",
	"msclkid",
	"sc_email",
	"sc_phone",
	"sc_uid",
	"_gl",
	"_ga",
}

// Params maps parameter name to value.
type Params map[string]string

// Known returns only the well-known keys that are present.
func (p Params) Known() Params {
	out := Params{}
	for _, k := range KnownKeys {
		if v, ok := p[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Keys returns known keys first, in their fixed order, then unknown keys sorted.
func (p Params) Keys() []string {
	known := map[string]bool{}
	keys := make([]string, 0, len(p))
	for _, k := range KnownKeys {
		known[k] = true
		if _, ok := p[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range p {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// MergeInto copies every parameter into dst without overwriting keys dst already has.
func (p Params) MergeInto(dst map[string]interface{}) {
	for k, v := range p {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}

// ParseQuery reads a raw query string (with or without a leading '?') into Params.
// Empty values are dropped; repeated keys keep the first value.
func ParseQuery(rawQuery string) (Params, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(rawQuery), "?"))
	if err != nil {
		return nil, fmt.Errorf("attribution: parse query: %w", err)
	}
	out := Params{}
	for k, vs := range values {
		if len(vs) > 0 && vs[0] != "" {
			out[k] = vs[0]
		}
	}
	return out, nil
}

// Store keeps the captured parameters for one device namespace.
type Store struct {
	kv        storage.KeyValueStore
	namespace string
	logger    logger.Logger
}

func NewStore(kv storage.KeyValueStore, namespace string, log logger.Logger) *Store {
	return &Store{kv: kv, namespace: namespace, logger: logger.ForComponent(log, "attribution")}
}

func (s *Store) key() string {
	if s.namespace == "" {
		return storageKey
	}
	return s.namespace + ":" + storageKey
}

// Capture stores the parameters from rawQuery unless a capture already exists.
// It reports whether anything was written.
func (s *Store) Capture(ctx context.Context, rawQuery string) (bool, error) {
	_, found, err := s.kv.Get(ctx, s.key())
	if err != nil {
		return false, fmt.Errorf("attribution: read: %w", err)
	}
	if found {
		return false, nil
	}

	params, err := ParseQuery(rawQuery)
	if err != nil {
		return false, err
	}

	data, err := json.Marshal(params)
	if err != nil {
		return false, fmt.Errorf("attribution: marshal: %w", err)
	}
	if err := s.kv.Set(ctx, s.key(), string(data)); err != nil {
		return false, fmt.Errorf("attribution: write: %w", err)
	}

	s.logger.Info("attribution captured", map[string]interface{}{"keys": params.Keys()})
	return true, nil
}

// Load returns every stored parameter. A missing or unreadable blob yields empty Params.
func (s *Store) Load(ctx context.Context) Params {
	raw, found, err := s.kv.Get(ctx, s.key())
	if err != nil {
		s.logger.Warn("attribution unavailable", map[string]interface{}{"error": err})
		return Params{}
	}
	if !found {
		return Params{}
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.logger.Warn("attribution blob unreadable", map[string]interface{}{"error": err})
		return Params{}
	}

	out := Params{}
	for k, v := range decoded {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out
}
