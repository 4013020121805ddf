package models

import "time"

// DateLayout is the calendar-day format used for quota accounting.
const DateLayout = "2006-01-02"

type Tab string

const (
	TabExterior Tab = "exterior"
	TabInterior Tab = "interior"
	TabPlan     Tab = "plan"
)

type InteriorMode string

const (
	InteriorModeStandard InteriorMode = "standard"
	InteriorModeFrom2D   InteriorMode = "from_2d"
	InteriorModeFrom3D   InteriorMode = "from_3d"
)

type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Asset is an in-memory image payload with its media type.
type Asset struct {
	Data     []byte
	MimeType string
}

func (a Asset) Empty() bool {
	return len(a.Data) == 0
}

// User is the per-identity quota record. UsedToday is only meaningful when
// LastUsageDate equals the current day; readers treat a stale date as zero
// usage without writing anything back.
type User struct {
	ID            int64
	Username      string
	DisplayName   string
	DailyLimit    int
	UsedToday     int
	LastUsageDate string
	IsPrivileged  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionRecord is one entry of the append-only session archive.
type SessionRecord struct {
	ID        string
	Asset     Asset
	Prompt    string
	CreatedAt time.Time
}

type GenerationLog struct {
	ID        int64
	UserID    int64
	Model     string
	Tier      Tier
	Prompt    string
	Billable  bool
	CreatedAt time.Time
}
