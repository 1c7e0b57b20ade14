package badge

import (
	"fmt"
	"time"

	"boardgame-tracker/internal/domain"
)

// Key is the composite badge identity. Deduplication is keyed on the struct
// rather than its string form so that a discriminator containing the
// separator character cannot collide.
type Key struct {
	Party         domain.Party
	Year          int
	Type          Type
	Discriminator string
}

// String renders the key as the stable badge ID exposed to callers.
func (k Key) String() string {
	return fmt.Sprintf("%s-%d-%s-%s", k.Party, k.Year, k.Type, k.Discriminator)
}

const dateLabelLayout = "Jan 2, 2006"

// dateLabel formats a session date as a display label and an RFC 3339 stamp.
// The stamp keeps the session's own zone so its calendar year always matches
// the year the session was grouped under.
func dateLabel(t time.Time) (label, iso string) {
	return t.Format(dateLabelLayout), t.Format(time.RFC3339)
}
