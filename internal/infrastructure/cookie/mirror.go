// Package cookie mirrors the resolved scheme into a cookie so a server-side
// renderer can emit correctly themed markup before client code runs.
package cookie

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
)

// MaxAge is one year in seconds.
const MaxAge = 365 * 24 * 60 * 60

// DefaultName is the cookie name used when none is configured.
const DefaultName = "theme"

// New builds the mirror cookie for scheme: root path, lax same-site, one year.
func New(name string, scheme entity.Scheme) *http.Cookie {
	if name == "" {
		name = DefaultName
	}
	return &http.Cookie{
		Name:     name,
		Value:    string(scheme),
		Path:     "/",
		MaxAge:   MaxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

// JarMirror implements port.SchemeMirror on top of an http.CookieJar scoped
// to one origin.
type JarMirror struct {
	jar    http.CookieJar
	origin *url.URL
}

// NewJarMirror creates a mirror writing into jar for origin.
func NewJarMirror(jar http.CookieJar, origin string) (*JarMirror, error) {
	if jar == nil {
		return nil, errors.New("cookie jar cannot be nil")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("origin %q has no host", origin)
	}
	return &JarMirror{jar: jar, origin: u}, nil
}

// Mirror implements port.SchemeMirror.
func (m *JarMirror) Mirror(_ context.Context, name string, scheme entity.Scheme) error {
	if !scheme.Valid() {
		return fmt.Errorf("refusing to mirror scheme %q", scheme)
	}
	m.jar.SetCookies(m.origin, []*http.Cookie{New(name, scheme)})
	return nil
}

// Lookup returns the scheme currently stored in the jar under name.
func (m *JarMirror) Lookup(name string) (entity.Scheme, bool) {
	if name == "" {
		name = DefaultName
	}
	for _, c := range m.jar.Cookies(m.origin) {
		if c.Name == name {
			return entity.ParseScheme(c.Value)
		}
	}
	return "", false
}

// ResponseMirror implements port.SchemeMirror by setting the cookie on an
// HTTP response, for handlers that change the preference server-side.
type ResponseMirror struct {
	w http.ResponseWriter
}

// NewResponseMirror wraps w.
func NewResponseMirror(w http.ResponseWriter) *ResponseMirror {
	return &ResponseMirror{w: w}
}

// Mirror implements port.SchemeMirror.
func (m *ResponseMirror) Mirror(_ context.Context, name string, scheme entity.Scheme) error {
	if !scheme.Valid() {
		return fmt.Errorf("refusing to mirror scheme %q", scheme)
	}
	http.SetCookie(m.w, New(name, scheme))
	return nil
}

// SchemeFromRequest reads the mirrored scheme from r.
func SchemeFromRequest(r *http.Request, name string) (entity.Scheme, bool) {
	if name == "" {
		name = DefaultName
	}
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return entity.ParseScheme(c.Value)
}

type ctxKey struct{}

// Middleware stores the mirrored scheme, or fallback when the request has
// none, in the request context for server-side rendering.
func Middleware(name string, fallback entity.Scheme, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, ok := SchemeFromRequest(r, name)
		if !ok {
			scheme = fallback
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, scheme)))
	})
}

// SchemeFromContext returns the scheme stored by Middleware.
func SchemeFromContext(ctx context.Context) (entity.Scheme, bool) {
	scheme, ok := ctx.Value(ctxKey{}).(entity.Scheme)
	return scheme, ok && scheme.Valid()
}

// RootAttributes renders the root element attributes a server renderer
// emits so the first paint already carries the marker. In attribute mode
// attr names the attribute; an empty attr selects class mode.
func RootAttributes(scheme entity.Scheme, attr string, colorSchemeHint bool) string {
	if !scheme.Valid() {
		return ""
	}
	value := html.EscapeString(string(scheme))
	out := fmt.Sprintf(`class="%s"`, value)
	if attr != "" {
		out = fmt.Sprintf(`%s="%s"`, html.EscapeString(attr), value)
	}
	if colorSchemeHint {
		out += fmt.Sprintf(` style="color-scheme: %s"`, value)
	}
	return out
}

var (
	_ port.SchemeMirror = (*JarMirror)(nil)
	_ port.SchemeMirror = (*ResponseMirror)(nil)
)
