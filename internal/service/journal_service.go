package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/repository/repoargs"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
)

// JournalService выдает записи журнала для выгрузки во внешнюю систему учета и фиксирует результат.
type JournalService struct {
	uow         uow.UOW
	journalRepo JournalRepository
}

func NewJournalService(u uow.UOW) (*JournalService, error) {
	journalRepo, err := uow.GetRepositoryAs[JournalRepository](u, uow.RepositoryName(repoargs.JournalRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &JournalService{
		uow:         u,
		journalRepo: journalRepo,
	}, nil
}

// EntriesForExport возвращает не выгруженные записи журнала.
func (j *JournalService) EntriesForExport(ctx context.Context, limit uint) ([]domain.JournalEntry, error) {
	entries, err := j.journalRepo.GetForExport(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return entries, nil
}

// ExportResult результат выгрузки одной записи. Error == nil значит запись принята.
type ExportResult struct {
	EntryID int64
	Error   error
}

// UpdateExported помечает принятые записи выгруженными, а для остальных увеличивает счетчик попыток.
// Обе части выполняются в одной транзакции.
func (j *JournalService) UpdateExported(ctx context.Context, results []ExportResult) error {
	exported, failed := splitExportResults(results)
	if len(exported) == 0 && len(failed) == 0 {
		return nil
	}

	txErr := j.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[JournalRepository](tx, uow.RepositoryName(repoargs.JournalRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		if len(exported) > 0 {
			var markErr error
			repo.MarkExported(c, exported, func(_ int, err error) {
				if err != nil {
					markErr = err
				}
			})
			if markErr != nil {
				return markErr
			}
		}

		if len(failed) > 0 {
			return repo.IncrementAttempts(c, failed) //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("updating exported journal entries: %w", txErr)
	}
	return nil
}

func splitExportResults(results []ExportResult) ([]int64, []int64) {
	exported := make([]int64, 0, len(results))
	failed := make([]int64, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			exported = append(exported, r.EntryID)
		} else {
			failed = append(failed, r.EntryID)
		}
	}
	return exported, failed
}
