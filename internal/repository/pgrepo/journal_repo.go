package pgrepo

import (
	"context"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/repository/repoargs"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `id, created_at, updated_at, machine_id, kind, resource, amount, details, status, attempts`

// maxExportAttempts после стольких неудачных попыток запись больше не выбирается для экспорта.
const maxExportAttempts = 10

type JournalRepository struct {
	conn uow.DBTX
}

func NewJournalRepository(conn uow.DBTX) *JournalRepository {
	return &JournalRepository{conn: conn}
}

func (r *JournalRepository) Create(ctx context.Context, args repoargs.JournalCreate) (*domain.JournalEntry, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO journal_entries (machine_id, kind, resource, amount, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+journalColumns,
		args.MachineID, string(args.Kind), string(args.Resource), args.Amount, args.Details,
	)
	entry, err := scanJournalEntry(row)
	if err != nil {
		return nil, convertErr(err, "creating `%s` journal entry for machine %s", args.Kind, args.MachineID)
	}
	return entry, nil
}

// GetByMachineID последние limit записей автомата, новые первыми.
func (r *JournalRepository) GetByMachineID(
	ctx context.Context,
	machineID uuid.UUID,
	limit uint,
) ([]domain.JournalEntry, error) {
	safeLimit, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "converting limit to int32")
	}
	rows, err := r.conn.Query(ctx, `
		SELECT `+journalColumns+` FROM journal_entries
		WHERE machine_id = $1
		ORDER BY id DESC
		LIMIT $2`, machineID, safeLimit)
	if err != nil {
		return nil, convertErr(err, "getting journal of machine %s", machineID)
	}
	entries, collectErr := collectJournal(rows)
	if collectErr != nil {
		return nil, convertErr(collectErr, "reading journal of machine %s", machineID)
	}
	return entries, nil
}

// GetForExport записи, еще не выгруженные во внешнюю систему учета. Записи с меньшим числом
// неудачных попыток идут первыми.
func (r *JournalRepository) GetForExport(ctx context.Context, limit uint) ([]domain.JournalEntry, error) {
	safeLimit, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "converting limit to int32")
	}
	rows, err := r.conn.Query(ctx, `
		SELECT `+journalColumns+` FROM journal_entries
		WHERE status = 'NEW' AND attempts < $2
		ORDER BY attempts, id
		LIMIT $1`, safeLimit, maxExportAttempts)
	if err != nil {
		return nil, convertErr(err, "getting journal entries for export")
	}
	entries, collectErr := collectJournal(rows)
	if collectErr != nil {
		return nil, convertErr(collectErr, "reading journal entries for export")
	}
	return entries, nil
}

// MarkExported помечает записи выгруженными одним batch запросом. fn вызывается для каждой записи.
func (r *JournalRepository) MarkExported(ctx context.Context, ids []int64, fn repoargs.BatchExecQueryRow) {
	batch := new(pgx.Batch)
	for _, id := range ids {
		batch.Queue(`UPDATE journal_entries SET status = 'EXPORTED', updated_at = now() WHERE id = $1`, id)
	}
	results := r.conn.SendBatch(ctx, batch)
	defer results.Close()

	for i, id := range ids {
		_, err := results.Exec()
		fn(i, convertErr(err, "marking journal entry %d exported", id))
	}
}

func (r *JournalRepository) IncrementAttempts(ctx context.Context, ids []int64) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE journal_entries SET attempts = attempts + 1, updated_at = now()
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return convertErr(err, "incrementing export attempts for journal entries `%v`", ids)
	}
	return nil
}

func collectJournal(rows pgx.Rows) ([]domain.JournalEntry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		e, scanErr := scanJournalEntry(row)
		if scanErr != nil {
			return domain.JournalEntry{}, scanErr
		}
		return *e, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return entries, nil
}

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		e                      domain.JournalEntry
		kind, resource, status string
		attempts               int32
	)
	if err := row.Scan(
		&e.ID, &e.CreatedAt, &e.UpdatedAt, &e.MachineID, &kind, &resource, &e.Amount, &e.Details, &status, &attempts,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	e.Kind = domain.JournalKindType(kind)
	e.Resource = domain.ResourceID(resource)
	e.Status = domain.ExportStatusType(status)
	e.Attempts = uint(attempts) //nolint:gosec
	return &e, nil
}
