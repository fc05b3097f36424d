package main

import (
	"io"

	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/command"
)

// readLoop is the session's single input-reader worker: it blocks on
// reads from the inputs channel up to 4 KiB at a time, splits on tab,
// and dispatches each record. A read failure is terminal.
func (s *Session) readLoop() {
	sc := command.NewScanner(s.inputsCh)

	for s.processInputs.Load() && sc.Scan() {
		record := sc.Text()
		if record == "" {
			continue
		}

		cmd, err := command.Parse(record)
		if err != nil {
			s.log.Warn("malformed command", zap.String("record", redactIfPassword(record)), zap.Error(err))
			continue
		}
		if cmd == nil {
			continue
		}
		s.apply(cmd)
	}

	if err := sc.Err(); err != nil && err != io.EOF {
		s.log.Error("inputs channel read failed", zap.Error(err))
	}
}

// redactIfPassword keeps the parser's "never log PWD" rule intact
// even when logging the raw record for a parse failure.
func redactIfPassword(record string) string {
	if len(record) >= 3 && record[:3] == "PWD" {
		return "PWD<redacted>"
	}
	return record
}
