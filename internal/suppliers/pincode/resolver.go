// Package pincode resolves 6-digit Indian postal codes to an approximate
// location. A static prefix table provides the baseline; when a completion
// model is configured its reply refines the result field by field. The
// resolver never fails: the worst case is the table's default location.
package pincode

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"agriportal_backend/platform/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Location is the resolved city/state/coordinates tuple for a pincode.
// Immutable once produced.
type Location struct {
	City     string  `json:"city"`
	State    string  `json:"state"`
	District string  `json:"district,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// Completer issues a single free-text prompt to a text-completion model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const cacheTTL = 24 * time.Hour

// Resolver maps pincodes to Locations. All fields are optional except the
// logger: without a completer it serves the static table, without a cache
// every request resolves fresh.
type Resolver struct {
	completer Completer
	cache     *redis.Client
	timeout   time.Duration
	log       *logger.Logger
	group     singleflight.Group
}

// NewResolver creates a pincode resolver. completer and cache may be nil.
func NewResolver(completer Completer, cache *redis.Client, timeout time.Duration, log *logger.Logger) *Resolver {
	return &Resolver{
		completer: completer,
		cache:     cache,
		timeout:   timeout,
		log:       log,
	}
}

// Resolve returns a complete Location for the pincode. Inputs are stripped
// to digits first; anything that is not exactly 6 digits resolves to the
// default location. This method never returns an error.
func (r *Resolver) Resolve(ctx context.Context, pin string) Location {
	pin = digitsOnly(pin)
	if len(pin) != 6 {
		return table.Default.location()
	}

	if loc, ok := r.cached(ctx, pin); ok {
		return loc
	}

	// Concurrent searches for the same pincode share one resolution.
	result, _, _ := r.group.Do(pin, func() (interface{}, error) {
		loc := r.resolve(ctx, pin)
		r.store(ctx, pin, loc)
		return loc, nil
	})

	return result.(Location)
}

func (r *Resolver) resolve(ctx context.Context, pin string) Location {
	fallback := lookupPrefix(pin)
	if r.completer == nil {
		return fallback
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	reply, err := r.completer.Complete(callCtx, buildPrompt(pin))
	if err != nil {
		r.log.UpstreamError("pincode completion", err)
		return fallback
	}

	return mergeReply(reply, fallback)
}

func buildPrompt(pin string) string {
	return fmt.Sprintf("For Indian pincode %s, provide the exact location details. "+
		"Give me: 1. City name, 2. State name, 3. District name, 4. Latitude coordinate, 5. Longitude coordinate. "+
		"Format exactly as: City: [name], State: [name], District: [name], Latitude: [number], Longitude: [number]. "+
		"If you don't know the exact coordinates, use approximate values based on the city location.", pin)
}

// Field patterns accept a couple of alternate key spellings each; any field
// the reply does not yield falls back to the static table value.
var (
	cityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)City:\s*([^,\n]+)`),
		regexp.MustCompile(`(?i)city[:\s]+([^,\n]+)`),
	}
	statePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)State:\s*([^,\n]+)`),
		regexp.MustCompile(`(?i)state[:\s]+([^,\n]+)`),
	}
	districtPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)District:\s*([^,\n]+)`),
		regexp.MustCompile(`(?i)district[:\s]+([^,\n]+)`),
	}
	latPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Latitude:\s*(-?[0-9.]+)`),
		regexp.MustCompile(`(?i)lat[a-z]*[:\s]+(-?[0-9.]+)`),
	}
	lngPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Longitude:\s*(-?[0-9.]+)`),
		regexp.MustCompile(`(?i)lon[a-z]*[:\s]+(-?[0-9.]+)`),
	}
)

func mergeReply(reply string, fallback Location) Location {
	loc := Location{
		City:     matchString(cityPatterns, reply, fallback.City),
		State:    matchString(statePatterns, reply, fallback.State),
		District: matchString(districtPatterns, reply, ""),
		Lat:      matchFloat(latPatterns, reply, fallback.Lat),
		Lng:      matchFloat(lngPatterns, reply, fallback.Lng),
	}
	return loc
}

func matchString(patterns []*regexp.Regexp, reply, fallback string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(reply); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return fallback
}

func matchFloat(patterns []*regexp.Regexp, reply string, fallback float64) float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(reply)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		return v
	}
	return fallback
}

func (r *Resolver) cached(ctx context.Context, pin string) (Location, bool) {
	if r.cache == nil {
		return Location{}, false
	}

	raw, err := r.cache.Get(ctx, cacheKey(pin)).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.UpstreamError("pincode cache get", err)
		}
		return Location{}, false
	}

	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return Location{}, false
	}
	return loc, true
}

func (r *Resolver) store(ctx context.Context, pin string, loc Location) {
	if r.cache == nil {
		return
	}

	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(pin), raw, cacheTTL).Err(); err != nil {
		r.log.UpstreamError("pincode cache set", err)
	}
}

func cacheKey(pin string) string {
	return "pincode:location:" + pin
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
