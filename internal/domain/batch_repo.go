package domain

type BatchRepository interface {
	CreateBatch(batch *CardBatch) error
	GetBatchByID(batchID string) (*CardBatch, error)
	GetBatchByNumber(batchNumber string) (*CardBatch, error)
	GetBatches(page, limit int) ([]*CardBatch, int64, error)
	UpdateInsertedCount(batchID string, inserted int) error
	// DeleteBatch must refuse while the batch still owns cards.
	DeleteBatch(batchID string) error
	FindIncompleteBatches() ([]*CardBatch, error)
}
