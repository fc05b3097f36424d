// Package printer implements the printer relay (C8): an at-most-one
// active print job per redirected printer, driven by the RDP virtual
// channel's document-open/write/close calls and backed by the
// injected spoolerfacade.Spooler.
package printer

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/myrtille/remotesession-bridge/internal/spoolerfacade"
)

func monotonicTick() int64 {
	return time.Now().UnixNano()
}

// pdfPrinterName is the specially-cased printer whose closed jobs are
// echoed back to the browser as a downloadable PDF notification.
const pdfPrinterName = "Myrtille PDF"

// ErrBusy is returned by CreateJob when the target printer already
// has an active job.
var ErrBusy = fmt.Errorf("printer: busy")

// ErrUnknownPrinter is returned for operations against a printer name
// EnumPrinters never reported.
var ErrUnknownPrinter = fmt.Errorf("printer: unknown printer")

// Job describes an in-progress print job.
type Job struct {
	DocName string
	handle  spoolerfacade.JobHandle
}

type entry struct {
	mu      sync.Mutex
	info    spoolerfacade.PrinterInfo
	pHandle spoolerfacade.PrinterHandle
	job     *Job
}

// Notifier is called when a job against the specially-named PDF
// printer closes, with the text message to publish on the updates
// channel ("printjob|<name>.pdf").
type Notifier func(text string)

// Registry tracks known printers and their at-most-one-job state.
// Each printer has its own lock so a slow job on one printer never
// blocks operations on another.
type Registry struct {
	spooler spoolerfacade.Spooler
	notify  Notifier
	pidFn   func() int
	tickFn  func() int64

	mu       sync.RWMutex
	printers map[string]*entry
}

// New builds a Registry. Its pidFn/tickFn fields start nil, so the
// "Myrtille PDF" unique job name uses os.Getpid and monotonicTick;
// tests in this package set the fields directly for deterministic
// names.
func New(spooler spoolerfacade.Spooler, notify Notifier) *Registry {
	return &Registry{
		spooler:  spooler,
		notify:   notify,
		printers: make(map[string]*entry),
	}
}

// SetNotifier (re)binds the registry's close notifier. Session
// construction happens before the updates channel exists, so the
// bridge wires this in once Connect has built its writer.
func (r *Registry) SetNotifier(n Notifier) {
	r.mu.Lock()
	r.notify = n
	r.mu.Unlock()
}

// EnumPrinters queries the spooler and refreshes the registry.
func (r *Registry) EnumPrinters() ([]spoolerfacade.PrinterInfo, error) {
	infos, err := r.spooler.EnumPrinters()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, info := range infos {
		if _, ok := r.printers[info.Name]; !ok {
			r.printers[info.Name] = &entry{info: info}
		}
	}
	return infos, nil
}

func (r *Registry) get(name string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.printers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownPrinter
	}
	return e, nil
}

// CreateJob opens a new document on the named printer. docNameHint is
// used verbatim unless the printer is the specially-named PDF
// printer, in which case a unique name is generated instead.
func (r *Registry) CreateJob(printerName, docNameHint string) (*Job, error) {
	e, err := r.get(printerName)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.job != nil {
		return nil, ErrBusy
	}

	if e.pHandle == 0 {
		h, err := r.spooler.OpenPrinter(printerName)
		if err != nil {
			return nil, fmt.Errorf("printer: open %q: %w", printerName, err)
		}
		e.pHandle = h
	}

	docName := docNameHint
	if printerName == pdfPrinterName {
		docName = r.uniquePDFJobName()
	}

	jobHandle, err := r.spooler.StartDoc(e.pHandle, docName)
	if err != nil {
		return nil, fmt.Errorf("printer: start doc on %q: %w", printerName, err)
	}
	if err := r.spooler.StartPage(jobHandle); err != nil {
		return nil, fmt.Errorf("printer: start page on %q: %w", printerName, err)
	}

	job := &Job{DocName: docName, handle: jobHandle}
	e.job = job
	return job, nil
}

func (r *Registry) uniquePDFJobName() string {
	pid := r.pidFn
	if pid == nil {
		pid = os.Getpid
	}
	tick := r.tickFn
	if tick == nil {
		tick = monotonicTick
	}
	return fmt.Sprintf("FREERDPjob%d%d", pid(), tick())
}

// WriteJob forwards bytes to the spooler for the printer's active job.
func (r *Registry) WriteJob(printerName string, data []byte) (int, error) {
	e, err := r.get(printerName)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.job == nil {
		return 0, fmt.Errorf("printer: no active job on %q", printerName)
	}
	return r.spooler.WritePage(e.job.handle, data)
}

// CloseJob ends the active job's page and document. It never closes
// the printer handle itself — a shared printer stays open across
// jobs and is only released by FreePrinter. Double-close is a no-op.
// If the printer is the specially-named PDF printer, the registered
// Notifier is invoked with the "printjob|<name>.pdf" text.
func (r *Registry) CloseJob(printerName string) error {
	e, err := r.get(printerName)
	if err != nil {
		return err
	}

	e.mu.Lock()
	job := e.job
	e.job = nil
	e.mu.Unlock()

	if job == nil {
		return nil
	}

	if err := r.spooler.EndPage(job.handle); err != nil {
		return fmt.Errorf("printer: end page on %q: %w", printerName, err)
	}
	if err := r.spooler.EndDoc(job.handle); err != nil {
		return fmt.Errorf("printer: end doc on %q: %w", printerName, err)
	}

	if printerName == pdfPrinterName {
		r.mu.RLock()
		notify := r.notify
		r.mu.RUnlock()
		if notify != nil {
			notify(fmt.Sprintf("printjob|%s.pdf", job.DocName))
		}
	}
	return nil
}

// FreePrinter releases the printer handle. This is the only operation
// that calls ClosePrinter; closing a shared printer between jobs
// would break subsequent CreateJob calls against it.
func (r *Registry) FreePrinter(printerName string) error {
	e, err := r.get(printerName)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pHandle == 0 {
		return nil
	}
	if err := r.spooler.ClosePrinter(e.pHandle); err != nil {
		return fmt.Errorf("printer: close %q: %w", printerName, err)
	}
	e.pHandle = 0
	return nil
}
