package httpapi

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// HostKeyHeader carries the gateway host key on inbound requests.
const HostKeyHeader = "X-Apim-Host-Key"

// exemptPaths are reachable without a host key so probes and scrapers work.
var exemptPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// HostKeyMiddleware rejects requests whose host key header does not match one
// of the configured keys. With no keys configured, all requests pass through.
func HostKeyMiddleware(hostKeys []string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(hostKeys) == 0 || exemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			presented := r.Header.Get(HostKeyHeader)
			for _, key := range hostKeys {
				if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("host key rejected",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
			)
			writeError(w, http.StatusForbidden, "forbidden", "Invalid host key")
		})
	}
}
