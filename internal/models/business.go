package models

// Business is a hiring organization account, read-only from this service.
type Business struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex"`
}

// BusinessCompact is the trimmed representation embedded in conversation
// summaries.
type BusinessCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (b *Business) ToCompact() BusinessCompact {
	return BusinessCompact{ID: b.ID, Name: b.Name}
}
