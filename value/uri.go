/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package value

import (
	"net/url"
	"strconv"
	"strings"
)

// URI is a parsed, normalized record derived from an RFC 3986 string:
// scheme, userinfo, host, port, path, query, fragment. It is copy-on-write
// in the sense that every mutating operation (DirUp) returns a new value
// built from re-normalized text rather than editing shared state in place.
type URI struct {
	raw      string
	scheme   string
	username string
	password string
	host     string
	port     int
	path     string
	query    string
	fragment string
	valid    bool
}

// ParseURI parses and normalizes raw per RFC 3986. An unparsable or
// structurally invalid URI (e.g. a literal unescaped '@' inside userinfo)
// yields a URI with Valid() == false rather than an error: a URI either
// parses cleanly or is marked invalid, with no partial parse surfaced.
func ParseURI(raw string) URI {
	u := URI{raw: raw, port: -1}

	if !validUserinfo(raw) {
		return u
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return u
	}

	u.scheme = parsed.Scheme
	u.host = parsed.Hostname()
	u.query = parsed.RawQuery
	u.fragment = parsed.Fragment

	if p := parsed.Port(); p != "" {
		if n, e := strconv.Atoi(p); e == nil {
			u.port = n
		}
	}

	if ui := parsed.User; ui != nil {
		u.username = ui.Username()
		u.password, _ = ui.Password()
	}

	u.path = normalizePath(parsed.Path, parsed.Host != "")
	u.valid = true
	u.raw = u.reconstruct()

	return u
}

// validUserinfo rejects URIs where the authority's userinfo segment
// contains a literal, un-percent-encoded '@' — RFC 3986 requires it to be
// pct-encoded, and net/url.Parse is too lenient to catch this on its own.
func validUserinfo(raw string) bool {
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd < 0 {
		return true
	}

	rest := raw[schemeEnd+3:]
	slash := strings.IndexAny(rest, "/?#")
	authority := rest
	if slash >= 0 {
		authority = rest[:slash]
	}

	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return true
	}

	return strings.Count(authority[:at], "@") == 0
}

// normalizePath resolves "." and ".." dot-segments and guarantees a
// leading '/' whenever the URI carries an authority, preserving a trailing
// slash (a directory reference with no filename).
func normalizePath(p string, hasAuthority bool) string {
	if p == "" {
		if hasAuthority {
			return "/"
		}
		return p
	}

	trailingSlash := strings.HasSuffix(p, "/") && p != "/"

	segs := strings.Split(p, "/")
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		switch s {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, s)
		}
	}

	res := "/" + strings.Join(out, "/")
	if trailingSlash && res != "/" {
		res += "/"
	}
	if res == "" {
		res = "/"
	}

	return res
}

func (u URI) reconstruct() string {
	var b strings.Builder

	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteString("://")
	}

	if u.username != "" {
		b.WriteString(u.username)
		if u.password != "" {
			b.WriteString(":")
			b.WriteString(u.password)
		}
		b.WriteString("@")
	}

	b.WriteString(u.host)

	if u.port >= 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(u.port))
	}

	b.WriteString(u.path)

	if u.query != "" {
		b.WriteString("?")
		b.WriteString(u.query)
	}

	if u.fragment != "" {
		b.WriteString("#")
		b.WriteString(u.fragment)
	}

	return b.String()
}

func (u URI) Scheme() string   { return u.scheme }
func (u URI) Username() string { return u.username }
func (u URI) Password() string { return u.password }
func (u URI) Host() string     { return u.host }
func (u URI) Port() int        { return u.port }
func (u URI) Path() string     { return u.path }
func (u URI) Query() string    { return u.query }
func (u URI) Fragment() string { return u.fragment }
func (u URI) Valid() bool      { return u.valid }
func (u URI) Uri() string      { return u.raw }

// Filename returns the last path segment, or "" for a directory reference
// (a path ending in '/').
func (u URI) Filename() string {
	if strings.HasSuffix(u.path, "/") {
		return ""
	}
	idx := strings.LastIndex(u.path, "/")
	if idx < 0 {
		return u.path
	}
	return u.path[idx+1:]
}

// Contains reports whether other's path is a prefix of this URI's path in
// directory-segment terms (not a plain string prefix): "file:///home/user"
// contains "file:///home", but "text.txt" does not contain "xt".
func (u URI) Contains(other URI) bool {
	a := strings.TrimSuffix(u.path, "/")
	b := strings.TrimSuffix(other.path, "/")

	if b == "" {
		b = "/"
	}
	if a == "" {
		a = "/"
	}

	return a == b || strings.HasPrefix(a, b+"/")
}

// DirUp goes up one directory if no filename is set, or clears the
// filename otherwise, and re-normalizes. A root URI ("/") is a no-op.
func (u URI) DirUp() URI {
	if u.path == "/" || u.path == "" {
		return u
	}

	if u.Filename() != "" {
		idx := strings.LastIndex(u.path, "/")
		u.path = u.path[:idx+1]
		u.raw = u.reconstruct()
		return u
	}

	trimmed := strings.TrimSuffix(u.path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		u.path = "/"
	} else {
		u.path = trimmed[:idx+1]
	}

	u.raw = u.reconstruct()
	return u
}
