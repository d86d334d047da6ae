package utils

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/livekit/protocol/logger"
)

type OpsQueueParams struct {
	Name        string
	FlushOnStop bool
	Logger      logger.Logger
}

// OpsQueue runs enqueued ops one at a time, in order, on a single goroutine.
// It is unbounded so that producers never block or drop ops.
type OpsQueue struct {
	params OpsQueueParams

	lock      sync.Mutex
	ops       deque.Deque[func()]
	wake      chan struct{}
	isStarted bool
	isStopped bool
	doneChan  chan struct{}
}

func NewOpsQueue(params OpsQueueParams) *OpsQueue {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	return &OpsQueue{
		params:   params,
		wake:     make(chan struct{}, 1),
		doneChan: make(chan struct{}),
	}
}

func (oq *OpsQueue) Start() {
	oq.lock.Lock()
	if oq.isStarted || oq.isStopped {
		oq.lock.Unlock()
		return
	}
	oq.isStarted = true
	oq.lock.Unlock()

	go oq.process()
}

// Stop returns a channel that is closed once the processing goroutine exits.
func (oq *OpsQueue) Stop() <-chan struct{} {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return oq.doneChan
	}
	oq.isStopped = true
	if !oq.isStarted {
		close(oq.doneChan)
	}
	oq.lock.Unlock()

	oq.signal()
	return oq.doneChan
}

func (oq *OpsQueue) Enqueue(op func()) {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		oq.params.Logger.Debugw("ops queue stopped, dropping op", "name", oq.params.Name)
		return
	}
	oq.ops.PushBack(op)
	oq.lock.Unlock()

	oq.signal()
}

func (oq *OpsQueue) Len() int {
	oq.lock.Lock()
	defer oq.lock.Unlock()

	return oq.ops.Len()
}

func (oq *OpsQueue) signal() {
	select {
	case oq.wake <- struct{}{}:
	default:
	}
}

func (oq *OpsQueue) process() {
	defer close(oq.doneChan)

	for range oq.wake {
		for {
			oq.lock.Lock()
			if oq.isStopped && (!oq.params.FlushOnStop || oq.ops.Len() == 0) {
				oq.lock.Unlock()
				return
			}
			if oq.ops.Len() == 0 {
				oq.lock.Unlock()
				break
			}
			op := oq.ops.PopFront()
			oq.lock.Unlock()

			op()
		}
	}
}
