package repository

import (
	"context"

	"github.com/sangkips/quotation-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a counter-table backed sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Reserve increments the counter row in place. The UPDATE holds the row lock
// until the surrounding transaction ends, so concurrent callers queue behind
// each other instead of reading the same value.
func (r *sequenceRepository) Reserve(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	var seq entity.QuoteSequence

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := increment(tx, name)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			start, err := seed(withTx(ctx, tx))
			if err != nil {
				return err
			}
			// Another caller may have created the row meanwhile; keep theirs.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&entity.QuoteSequence{Name: name, LastValue: start}).Error; err != nil {
				return err
			}
			if err := increment(tx, name).Error; err != nil {
				return err
			}
		}

		return tx.Where("name = ?", name).Take(&seq).Error
	})
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

func increment(tx *gorm.DB, name string) *gorm.DB {
	return tx.Model(&entity.QuoteSequence{}).
		Where("name = ?", name).
		UpdateColumn("last_value", gorm.Expr("last_value + ?", 1))
}
