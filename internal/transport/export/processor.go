// Package export выгружает журнал изменений автоматов во внешнюю систему учета.
package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/service"
	"github.com/fsdevblog/gumball-machine/internal/transport/export/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultAPITimeout             = 10 * time.Second
	defaultIdleInterval           = time.Second
	defaultLimitPerIteration uint = 100
	defaultExportWorkers     uint = 10
)

// Processor выгружает записи журнала через Client.
type Processor struct {
	client            Client
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	exportWorkers     uint
	idleInterval      time.Duration
}

func New(svs Servicer, apiBaseURL string, l *logrus.Logger) *Processor {
	return &Processor{
		svs:    svs,
		client: client.New(apiBaseURL),
		l: l.WithFields(logrus.Fields{
			"component": "export",
			"module":    "processor",
		}),
		limitPerIteration: defaultLimitPerIteration,
		exportWorkers:     defaultExportWorkers,
		idleInterval:      defaultIdleInterval,
	}
}

// SetLimitPerIteration устанавливает кол-во записей, выгружаемых за одну итерацию.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetExportWorkers устанавливает кол-во воркеров, не меньше одного.
func (p *Processor) SetExportWorkers(workers uint) *Processor {
	p.exportWorkers = max(workers, 1)
	return p
}

// Run выгружает журнал в цикле до отмены контекста.
//
// На каждой итерации:
//  1. через сервисный слой запрашивается пачка не выгруженных записей (не больше SetLimitPerIteration);
//  2. записи раздаются N воркерам (SetExportWorkers), каждый отправляет свою запись в учетную систему;
//  3. результат фиксируется через сервисный слой: принятые записи помечаются выгруженными, для
//     остальных увеличивается счетчик попыток.
//
// Если записей нет, часть записей не принята или итерация завершилась ошибкой, следующая начинается
// после паузы.
func (p *Processor) Run(ctx context.Context) error {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"exportWorkers":     p.exportWorkers,
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNoEntries) && !errors.Is(err, ErrExportFailed) && ctx.Err() == nil {
			p.l.WithError(err).Error("process error")
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return nil
		case <-time.After(p.idleInterval):
		}
	}
}

func (p *Processor) process(ctx context.Context) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr //nolint:wrapcheck
	}

	entries, entriesErr := p.produce(ctx)
	if entriesErr != nil {
		return fmt.Errorf("process: %w", entriesErr)
	}

	results := p.runWorkers(ctx, entries)
	if len(results) == 0 {
		return nil
	}

	var failed int
	updates := make([]service.ExportResult, len(results))
	for i, r := range results {
		updates[i] = service.ExportResult{EntryID: r.Entry.ID, Error: r.Error}
		if r.Error != nil {
			failed++
		}
	}

	// результат фиксируется и после отмены ctx, иначе принятые записи уйдут повторно.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if updErr := p.svs.UpdateExported(reqCtx, updates); updErr != nil {
		return fmt.Errorf("process: %w", updErr)
	}
	if failed > 0 {
		return fmt.Errorf("process: %d of %d: %w", failed, len(updates), ErrExportFailed)
	}
	return nil
}

type workerResult struct {
	WorkerID uint
	Entry    *domain.JournalEntry
	Error    error
}

// runWorkers раздает записи воркерам и собирает результаты (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, entries []domain.JournalEntry) []workerResult {
	taskCh := make(chan *domain.JournalEntry, len(entries))
	for i := range entries {
		taskCh <- &entries[i]
	}
	close(taskCh)

	resultCh := make(chan *workerResult, len(entries))

	wg := new(sync.WaitGroup)
	for i := range p.exportWorkers {
		wg.Add(1)
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	results := make([]workerResult, 0, len(entries))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":   result.WorkerID,
			"entryID":  result.Entry.ID,
			"attempt":  result.Entry.Attempts + 1,
			"kind":     result.Entry.Kind,
			"machine":  result.Entry.MachineID,
			"exported": result.Error == nil,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("export journal entry")
		} else {
			l.Debug("Success")
		}
		results = append(results, *result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.JournalEntry,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.exportEntry(ctx, workerID, task)
		}
	}
}

// exportEntry отправляет запись. На TooManyRequestError ждет указанное сервером время и повторяет.
func (p *Processor) exportEntry(ctx context.Context, workerID uint, task *domain.JournalEntry) *workerResult {
	result := &workerResult{WorkerID: workerID, Entry: task}
	for {
		reqCtx, cancel := context.WithTimeout(ctx, defaultAPITimeout)
		err := p.client.Send(reqCtx, client.NewEntry(*task))
		cancel()

		var tooManyReq *client.TooManyRequestError
		if !errors.As(err, &tooManyReq) {
			result.Error = err
			return result
		}

		select {
		case <-ctx.Done():
			result.Error = ctx.Err()
			return result
		case <-time.After(tooManyReq.RetryAfter):
		}
	}
}

// produce возвращает ErrNoEntries, если выгружать нечего.
func (p *Processor) produce(ctx context.Context) ([]domain.JournalEntry, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	entries, err := p.svs.EntriesForExport(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}
