package main

import (
	"io"

	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/wire"
)

// emission is one unit of work for the updates actor: either a text
// message or an image frame, never both.
type emission struct {
	text  string
	frame *wire.ImageFrame
}

// updatesActor is the single writer for the updates channel. The
// reader goroutine and every capture callback push emissions into it
// instead of writing directly, so writes from concurrent callers
// never interleave even though each wire.Writer call is already a
// single syscall.
type updatesActor struct {
	w      *wire.Writer
	log    *zap.Logger
	emit   chan emission
	done   chan struct{}
	failed func()
}

func newUpdatesActor(dst io.Writer, log *zap.Logger) *updatesActor {
	return &updatesActor{
		w:    wire.NewWriter(dst),
		log:  log,
		emit: make(chan emission, 64),
		done: make(chan struct{}),
	}
}

func (a *updatesActor) run() {
	for {
		select {
		case e, ok := <-a.emit:
			if !ok {
				return
			}
			a.write(e)
		case <-a.done:
			return
		}
	}
}

func (a *updatesActor) write(e emission) {
	var err error
	if e.frame != nil {
		err = a.w.WriteImage(*e.frame)
	} else {
		err = a.w.WriteText(e.text)
	}
	if err != nil {
		a.log.Error("updates channel write failed", zap.Error(err))
		if a.failed != nil {
			a.failed()
		}
	}
}

func (a *updatesActor) emitText(text string) {
	select {
	case a.emit <- emission{text: text}:
	case <-a.done:
	}
}

func (a *updatesActor) emitFrame(f wire.ImageFrame) {
	select {
	case a.emit <- emission{frame: &f}:
	case <-a.done:
	}
}

func (a *updatesActor) close() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}
