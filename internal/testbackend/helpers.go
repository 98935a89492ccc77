package testbackend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/middleware"
	"github.com/2beens/fitpro/pkg"

	log "github.com/sirupsen/logrus"
)

var errInvalidDate = errors.New("invalid date")

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debugf("testbackend: decode %s body: %s", r.URL.Path, err)
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// currentUser resolves the authenticated caller. It writes a 401 and
// returns false when the token subject is not a known account.
func (b *Backend) currentUser(w http.ResponseWriter, r *http.Request) (*account, bool) {
	userID, ok := middleware.UserID(r.Context())
	if ok {
		b.mutex.Lock()
		acc, found := b.accounts[userID]
		b.mutex.Unlock()
		if found {
			return acc, true
		}
	}
	pkg.WriteEnvelopeError(w, http.StatusUnauthorized, "User not found")
	return nil, false
}

// dayRange is the half-open interval [from, to) covered by the "from"
// and "to" day keys; a missing bound is open.
type dayRange struct {
	from *time.Time
	to   *time.Time
}

func (b *Backend) parseDayRange(fromKey, toKey string) (dayRange, error) {
	var dr dayRange
	if fromKey != "" {
		from, err := pkg.ParseDayKey(fromKey, b.loc)
		if err != nil {
			return dr, errInvalidDate
		}
		dr.from = &from
	}
	if toKey != "" {
		to, err := pkg.ParseDayKey(toKey, b.loc)
		if err != nil {
			return dr, errInvalidDate
		}
		end := pkg.AddDays(to, 1)
		dr.to = &end
	}
	return dr, nil
}

func (dr dayRange) contains(t time.Time) bool {
	if dr.from != nil && t.Before(*dr.from) {
		return false
	}
	if dr.to != nil && !t.Before(*dr.to) {
		return false
	}
	return true
}

func positiveIntParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
