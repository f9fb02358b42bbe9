package card

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
	"github.com/google/uuid"
)

// GenerateBatch creates a batch record and bulk-inserts its cards in
// chunks. Chunks that land stay committed: a mid-batch failure comes back
// as *domain.PartialBatchError and the batch can be finished later with
// ResumeBatch.
func (uc *DefaultCardUsecase) GenerateBatch(input carddto.GenerateBatchInput) (*carddto.GenerateBatchOutput, error) {
	count := input.Count
	startSeq := 0

	switch input.Mode {
	case domain.ModeAuto:
		if count < 1 {
			return nil, &domain.ValidationError{Field: "count", Value: strconv.Itoa(count), Reason: "must be at least 1"}
		}
	case domain.ModeManual:
		// Manual codes name a single physical card.
		if count != 1 {
			return nil, &domain.ValidationError{Field: "count", Value: strconv.Itoa(count), Reason: "manual mode generates exactly one card"}
		}
	case domain.ModeRange:
		if input.RangeStart < 1 || input.RangeEnd < input.RangeStart {
			return nil, &domain.ValidationError{
				Field:  "range",
				Value:  fmt.Sprintf("[%d,%d]", input.RangeStart, input.RangeEnd),
				Reason: "start must be >= 1 and <= end",
			}
		}
		count = input.RangeEnd - input.RangeStart + 1
		startSeq = input.RangeStart
	default:
		return nil, &domain.ValidationError{Field: "mode", Value: string(input.Mode), Reason: "unknown generation mode"}
	}

	// The in-batch index is three digits wide on the printed card.
	if count > 999 {
		return nil, &domain.ValidationError{Field: "count", Value: strconv.Itoa(count), Reason: "a batch holds at most 999 cards"}
	}

	if input.Mode != domain.ModeRange {
		next, err := uc.cardRepo.NextSequence()
		if err != nil {
			return nil, err
		}
		startSeq = next
	}
	if startSeq+count-1 > uc.genCfg.MaxSequence {
		return nil, &domain.ValidationError{
			Field:  "count",
			Value:  strconv.Itoa(count),
			Reason: fmt.Sprintf("sequence space exhausted: next %d, cap %d", startSeq, uc.genCfg.MaxSequence),
		}
	}

	var batchNumber string
	var err error
	if input.Mode == domain.ModeRange {
		batchNumber, err = uc.generator.GenerateRangeBatchNumber(input.LocationPrefix, input.RangeStart, input.RangeEnd)
	} else {
		batchNumber, err = uc.generator.GenerateBatchNumber(input.Mode, input.CustomBatchNumber, input.LocationPrefix)
	}
	if err != nil {
		return nil, err
	}

	now := uc.now()
	batch := &domain.CardBatch{
		ID:             uuid.New().String(),
		BatchNumber:    batchNumber,
		Mode:           input.Mode,
		RequestedCount: count,
		LocationPrefix: input.LocationPrefix,
		RangeStart:     input.RangeStart,
		RangeEnd:       input.RangeEnd,
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.batchRepo.CreateBatch(batch); err != nil {
		return nil, err
	}

	cards, err := uc.fillBatch(batch, input, startSeq, 0)
	out := &carddto.GenerateBatchOutput{Batch: batch, Cards: cards}
	if err != nil {
		uc.countErr("generate", err)
		return out, err
	}

	uc.versions.Bump(domain.ComponentBatches, "batch generated: "+batch.BatchNumber)
	uc.versions.Bump(domain.ComponentCards, fmt.Sprintf("%d cards generated", len(cards)))
	return out, nil
}

// ResumeBatch finishes a partially generated batch from where the last
// attempt stopped.
func (uc *DefaultCardUsecase) ResumeBatch(batchID string) (*carddto.GenerateBatchOutput, error) {
	batch, err := uc.batchRepo.GetBatchByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch.Complete() {
		return nil, domain.ErrBatchComplete
	}

	input := carddto.GenerateBatchInput{
		Mode:           batch.Mode,
		LocationPrefix: batch.LocationPrefix,
	}
	// Reuse the location code the first attempt stamped on its cards.
	if existing, _, err := uc.cardRepo.GetCardsByBatch(batch.ID, 1, 1); err == nil && len(existing) > 0 {
		input.LocationCode = existing[0].LocationCode
	}

	startSeq := 0
	if batch.Mode == domain.ModeRange {
		startSeq = batch.RangeStart + batch.InsertedCount
	} else {
		next, err := uc.cardRepo.NextSequence()
		if err != nil {
			return nil, err
		}
		startSeq = next
	}

	cards, err := uc.fillBatch(batch, input, startSeq, batch.InsertedCount)
	out := &carddto.GenerateBatchOutput{Batch: batch, Cards: cards}
	if err != nil {
		uc.countErr("resume", err)
		return out, err
	}

	uc.versions.Bump(domain.ComponentCards, fmt.Sprintf("batch resumed: %s", batch.BatchNumber))
	return out, nil
}

// fillBatch builds and inserts cards [offset+1 .. RequestedCount] of the
// batch, chunk by chunk, keeping InsertedCount current after every chunk.
func (uc *DefaultCardUsecase) fillBatch(batch *domain.CardBatch, input carddto.GenerateBatchInput, startSeq, offset int) ([]*domain.Card, error) {
	controlPrefix, err := codegen.ControlPrefix(batch.BatchNumber)
	if err != nil {
		return nil, err
	}
	locationCode := input.LocationCode
	if locationCode == "" {
		locationCode = batch.LocationPrefix + "X"
	}

	remaining := batch.RequestedCount - offset
	var all []*domain.Card
	inserted := 0

	for inserted < remaining {
		size := uc.genCfg.ChunkSize
		if size <= 0 {
			size = remaining
		}
		if inserted+size > remaining {
			size = remaining - inserted
		}

		chunk := make([]*domain.Card, 0, size)
		for i := 0; i < size; i++ {
			index := offset + inserted + i + 1
			control, err := uc.generator.GenerateControlNumber(controlPrefix, index, batch.Mode, input.CustomControlNumber)
			if err != nil {
				return all, uc.partial(batch, offset+inserted, err)
			}
			canonical, err := codegen.Normalize(control, codegen.CodeControl)
			if err != nil {
				return all, uc.partial(batch, offset+inserted, err)
			}
			passcode, err := uc.generator.GeneratePasscode(locationCode, batch.Mode, input.CustomPasscode)
			if err != nil {
				return all, uc.partial(batch, offset+inserted, err)
			}

			now := uc.now()
			chunk = append(chunk, &domain.Card{
				ID: uuid.New().String(),
				Code: domain.CardCode{
					Canonical: canonical,
					Sequence:  startSeq + inserted + i,
				},
				Passcode:     passcode,
				LocationCode: locationCode,
				Status:       domain.StatusUnassigned,
				BatchID:      batch.ID,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}

		started := time.Now()
		if err := uc.cardRepo.CreateCards(chunk); err != nil {
			return all, uc.partial(batch, offset+inserted, err)
		}
		if uc.metrics != nil {
			uc.metrics.GenerationChunkDuration.Observe(time.Since(started).Seconds())
			uc.metrics.CardsGeneratedTotal.WithLabelValues(string(batch.Mode)).Add(float64(len(chunk)))
		}

		all = append(all, chunk...)
		inserted += len(chunk)
		batch.InsertedCount = offset + inserted
		if err := uc.batchRepo.UpdateInsertedCount(batch.ID, batch.InsertedCount); err != nil {
			return all, uc.partial(batch, batch.InsertedCount, err)
		}

		if inserted < remaining && uc.genCfg.ChunkDelay > 0 {
			time.Sleep(uc.genCfg.ChunkDelay)
		}
	}

	return all, nil
}

func (uc *DefaultCardUsecase) partial(batch *domain.CardBatch, inserted int, cause error) error {
	if uc.metrics != nil {
		uc.metrics.PartialBatchesTotal.Inc()
	}
	return &domain.PartialBatchError{
		BatchID:   batch.ID,
		Requested: batch.RequestedCount,
		Inserted:  inserted,
		Err:       cause,
	}
}

// DeleteBatch removes an empty batch record. Batches that still own cards
// are refused by the storage layer.
func (uc *DefaultCardUsecase) DeleteBatch(batchID string) error {
	if err := uc.batchRepo.DeleteBatch(batchID); err != nil {
		return err
	}
	uc.versions.Bump(domain.ComponentBatches, "batch deleted")
	return nil
}

func (uc *DefaultCardUsecase) GetBatches(page, limit int) ([]*domain.CardBatch, int64, error) {
	return uc.batchRepo.GetBatches(page, limit)
}
