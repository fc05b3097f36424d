package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/spoolerfacade"
)

// These entry points are invoked by the RDP virtual channel's printer
// redirection callbacks, outside this package's scope. They exist
// here so that boundary, once wired to a real RDP facade, has
// somewhere to land.

// OnPrinterEnum refreshes the known printer list from the host
// spooler.
func (s *Session) OnPrinterEnum() ([]spoolerfacade.PrinterInfo, error) {
	return s.prints.EnumPrinters()
}

// OnPrinterDocumentOpen starts a new document on the named printer.
func (s *Session) OnPrinterDocumentOpen(printerName, docNameHint string) error {
	job, err := s.prints.CreateJob(printerName, docNameHint)
	if err != nil {
		s.log.Warn("printer create job failed", zap.String("printer", printerName), zap.Error(err))
		return err
	}

	if s.diag != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := s.diag.RecordPrintjobOpened(ctx, printerName, job.DocName, time.Now()); err != nil {
			s.log.Warn("diagnostics record printjob open failed", zap.Error(err))
		}
	}
	if s.mtr != nil {
		s.mtr.PrintjobsActive.Inc()
	}
	return nil
}

// OnPrinterDocumentWrite forwards one chunk of spooled page data.
func (s *Session) OnPrinterDocumentWrite(printerName string, data []byte) (int, error) {
	return s.prints.WriteJob(printerName, data)
}

// OnPrinterDocumentClose ends the active job. Closing the job against
// the specially-named PDF printer publishes a text notification on
// the updates channel via the registry's notifier.
func (s *Session) OnPrinterDocumentClose(printerName string) error {
	if err := s.prints.CloseJob(printerName); err != nil {
		s.log.Warn("printer close job failed", zap.String("printer", printerName), zap.Error(err))
		return err
	}
	if s.mtr != nil {
		s.mtr.PrintjobsActive.Dec()
	}
	return nil
}

// OnPrinterFree releases the printer handle once the virtual channel
// has no further use for it.
func (s *Session) OnPrinterFree(printerName string) error {
	return s.prints.FreePrinter(printerName)
}
