package http

import (
	"bufio"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCookieFile parses a Netscape-format cookie file into cookies
// suitable for WithCookies. Each line holds seven tab-separated fields:
// domain, include_subdomains, path, secure, expires, name, value.
// Comment lines starting with '#' and malformed lines are skipped.
func LoadCookieFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}

		cookie := &http.Cookie{
			Domain: strings.TrimPrefix(parts[0], "."),
			Path:   parts[2],
			Secure: strings.EqualFold(parts[3], "TRUE"),
			Name:   parts[5],
			Value:  parts[6],
		}
		if expires, err := strconv.ParseInt(parts[4], 10, 64); err == nil && expires > 0 {
			cookie.Expires = time.Unix(expires, 0)
		}
		if cookie.Name == "" {
			continue
		}
		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cookies, nil
}
