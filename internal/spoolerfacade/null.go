package spoolerfacade

import "errors"

// ErrNoSpooler is returned by every Null operation: no real host
// spooler has been wired into this deployment.
var ErrNoSpooler = errors.New("spoolerfacade: no spooler configured")

// Null is a Spooler that reports no printers and rejects every job
// operation. It lets the printer relay start up in a deployment that
// has not wired a concrete OS spooler binding.
type Null struct{}

func (Null) EnumPrinters() ([]PrinterInfo, error) { return nil, nil }

func (Null) OpenPrinter(name string) (PrinterHandle, error) {
	return 0, ErrNoSpooler
}

func (Null) ClosePrinter(handle PrinterHandle) error { return ErrNoSpooler }

func (Null) StartDoc(handle PrinterHandle, docName string) (JobHandle, error) {
	return 0, ErrNoSpooler
}

func (Null) StartPage(job JobHandle) error { return ErrNoSpooler }

func (Null) WritePage(job JobHandle, data []byte) (int, error) {
	return 0, ErrNoSpooler
}

func (Null) EndPage(job JobHandle) error { return ErrNoSpooler }
func (Null) EndDoc(job JobHandle) error { return ErrNoSpooler }
