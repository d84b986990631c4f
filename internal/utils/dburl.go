package utils

import (
	"fmt"
	"net/url"
)

// BuildPostgresURL assembles a connection URL from discrete settings. The
// password is escaped so it may contain URL-reserved characters.
func BuildPostgresURL(host, port, database, user, password, sslMode string) (string, error) {
	if host == "" || database == "" || user == "" {
		return "", fmt.Errorf("host, database and user must be non-empty")
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   host + ":" + port,
		Path:   "/" + database,
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	if sslMode != "" {
		q := u.Query()
		q.Set("sslmode", sslMode)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
