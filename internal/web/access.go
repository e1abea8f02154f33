// internal/web/access.go
//
// Access-log middleware.
//
// Context
// -------
// Every request gets one INFO line with method, path, status, duration,
// and client hints: browser family and device class from the parsed
// User-Agent, and a best-effort country code when a GeoLite2 database
// is configured.  Lookups are read-only and pool-based, so the
// middleware is safe under concurrency.
package web

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/yanizio/larder/internal/ua"
)

// geoReader is a process-wide MaxMind handle.  Nil when geo enrichment
// is disabled.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2 database at dbPath.  Call from main before
// serving; skip entirely to run without geo enrichment.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

// statusRecorder captures the handler's status code for the log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLog wraps next with per-request logging.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		info := ua.Parse(r.UserAgent())
		zap.S().Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"browser", info.Browser,
			"device", info.Device,
			"bot", info.IsBot,
			"country", lookupCountry(clientIP(r)),
		)
	})
}

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-Ip, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}

// lookupCountry returns a best-effort ISO country code, or "".
func lookupCountry(ip net.IP) string {
	if geoReader == nil || ip == nil {
		return ""
	}
	rec, err := geoReader.Country(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}
