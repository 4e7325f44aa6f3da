package models

// Report represents one recorded loss incident submitted from the web form.
//
// RequestIdentity is the idempotency key: either supplied by the client or
// derived from the normalized field values. Together with ID and CreatedAt it
// is immutable once the row exists; everything else may be overwritten
// wholesale by an update.
type Report struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	RequestIdentity string `gorm:"size:128;not null;uniqueIndex" json:"request_identity"`
	Manager         string `gorm:"size:255;not null" json:"manager"`
	Restaurant      string `gorm:"size:255;not null" json:"restaurant"`
	Reason          string `gorm:"size:255;not null" json:"reason"`
	Amount          int64  `gorm:"not null" json:"amount"` // whole currency units, always > 0
	StartsAt        string `gorm:"size:32" json:"start"`   // DD.MM.YYYY HH:MM, may be empty
	EndsAt          string `gorm:"size:32" json:"end"`
	Comment         string `gorm:"size:1000" json:"comment"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"` // epoch milliseconds
}
