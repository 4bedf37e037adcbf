package export

import "errors"

var (
	ErrNoEntries = errors.New("no journal entries to export")
	// ErrExportFailed часть записей итерации не принята, следующая попытка после паузы.
	ErrExportFailed = errors.New("journal entries export failed")
)
