package profile

import (
	"strconv"
	"time"
)

const (
	fieldDosha     = "dosha"
	fieldUpdatedAt = "updated_at"
)

type record struct {
	Dosha     string
	UpdatedAt time.Time
}

func toHash(dosha string, at time.Time) map[string]string {
	return map[string]string{
		fieldDosha:     dosha,
		fieldUpdatedAt: strconv.FormatInt(at.Unix(), 10),
	}
}

// fromHash tolerates a missing or malformed timestamp; dosha is required.
func fromHash(m map[string]string) (record, bool) {
	dosha := m[fieldDosha]
	if dosha == "" {
		return record{}, false
	}
	var at time.Time
	if sec, err := strconv.ParseInt(m[fieldUpdatedAt], 10, 64); err == nil {
		at = time.Unix(sec, 0)
	}
	return record{Dosha: dosha, UpdatedAt: at}, true
}
