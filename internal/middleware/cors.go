package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/zhouzirui/questme/backend/internal/config"
)

// allowList is the parsed CORS_ALLOWED_ORIGINS value.
type allowList struct {
	any     bool
	origins map[string]struct{}
}

func parseAllowList(raw string) allowList {
	list := allowList{origins: make(map[string]struct{})}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			list.any = true
		default:
			list.origins[o] = struct{}{}
		}
	}
	return list
}

func (l allowList) allows(origin string) bool {
	if l.any {
		return true
	}
	_, ok := l.origins[origin]
	return ok
}

// CORS 为允许的来源设置跨域响应头，并直接应答浏览器预检请求。
// 只有带 Access-Control-Request-Method 的 OPTIONS 才算预检，其余交给路由。
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	allowed := parseAllowList(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Add("Vary", "Origin")
				if allowed.allows(origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				} else {
					slog.Debug("origin rejected", "component", "cors", "origin", origin, "path", r.URL.Path)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
