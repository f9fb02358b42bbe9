package domain

import "time"

type GenerationMode string

const (
	ModeAuto   GenerationMode = "auto"
	ModeManual GenerationMode = "manual"
	ModeRange  GenerationMode = "range"
)

type CardBatch struct {
	ID             string
	BatchNumber    string
	Mode           GenerationMode
	RequestedCount int
	InsertedCount  int
	LocationPrefix string
	RangeStart     int
	RangeEnd       int
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Complete reports whether every requested card made it to storage.
// A false value marks a partially generated batch that can be resumed.
func (b *CardBatch) Complete() bool {
	return b.InsertedCount >= b.RequestedCount
}
