package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"bayleaf/shared"
	"bayleaf/shared/cache"
	"bayleaf/shared/constant"
	"bayleaf/transport/http/response"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client in Redis. Without Redis each client gets
// an in-process token bucket with the same budget.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	settings := a.config.App.RateLimiter
	if !settings.Enable || settings.MaxRequests <= 0 || settings.WindowSeconds <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	if !cache.Enabled(a.cache) {
		a.limiterOnce.Do(func() {
			a.local = newLocalLimiter(settings.MaxRequests, time.Duration(settings.WindowSeconds)*time.Second)
			log.Warn().Msg("redis unavailable, rate limiting per process")
		})

		return a.localRateLimit
	}

	return a.redisRateLimit
}

func (a *appMiddleware) redisRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds

		cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.clientIP(r), userAgent(r))

		var count int
		err := a.cache.Get(r.Context(), cacheKey, &count)

		switch {
		case errors.Is(err, cache.Nil):
			count = 1
		case err != nil:
			next.ServeHTTP(w, r)

			return
		default:
			count++
		}

		if count > maxReqs {
			response.WithRequestLimitExceeded(w)

			return
		}

		if err := a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
			next.ServeHTTP(w, r)

			return
		}

		setLimitHeaders(w, maxReqs, maxReqs-count, windowSecs)

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) localRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds

		limiter := a.local.get(a.clientIP(r) + ":" + userAgent(r))
		if !limiter.Allow() {
			response.WithRequestLimitExceeded(w)

			return
		}

		setLimitHeaders(w, maxReqs, int(limiter.Tokens()), windowSecs)

		next.ServeHTTP(w, r)
	})
}

func setLimitHeaders(w http.ResponseWriter, limit, remaining, window int) {
	w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
	w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, remaining)))
	w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	window   time.Duration
	swept    time.Time
}

func newLocalLimiter(maxReqs int, window time.Duration) *localLimiter {
	return &localLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(maxReqs)),
		burst:    maxReqs,
		window:   window,
		swept:    time.Now(),
	}
}

func (l *localLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// a visitor idle for a full window has a full bucket again
	if now.Sub(l.swept) > l.window {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.window {
				delete(l.visitors, k)
			}
		}

		l.swept = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return ua
}

// clientIP is the TCP peer unless the peer is a trusted proxy. Behind one, it is the
// right-most X-Forwarded-For hop that is not itself a trusted proxy, then X-Real-IP.
func (a *appMiddleware) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}

	if !a.trusted(peer) {
		return peer
	}

	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && (!a.trusted(hop) || i == 0) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); xri != "" {
		return xri
	}

	return peer
}

func (a *appMiddleware) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()
	for _, prefix := range a.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

func parseProxies(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())

			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			log.Warn().Str("entry", entry).Msg("ignoring invalid trusted proxy")

			continue
		}

		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return prefixes
}
