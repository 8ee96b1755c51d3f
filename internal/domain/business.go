package domain

import "time"

type Business struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`    // two-letter US state code
	Timezone  string    `json:"timezone"` // cached IANA identifier resolved from State, empty until resolved
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
