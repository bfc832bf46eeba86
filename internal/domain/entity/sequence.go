package entity

// QuoteSequence is a named counter handing out quote numbers.
type QuoteSequence struct {
	Name      string `gorm:"size:50;primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the QuoteSequence model
func (QuoteSequence) TableName() string {
	return "quote_sequences"
}
