package workerpool

import (
	"context"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/logger"
)

type Worker struct {
	id    string
	quit  chan bool
	tasks <-chan Task
	done  func()
}

func NewWorker(id string, tasks <-chan Task, done func()) *Worker {
	return &Worker{
		id:    id,
		quit:  make(chan bool),
		tasks: tasks,
		done:  done,
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-w.quit:
				return
			case task, ok := <-w.tasks:
				if !ok {
					return
				}
				w.runTask(ctx, task)
			}
		}
	}()
}

func (w *Worker) runTask(ctx context.Context, task Task) {
	defer w.done()
	if err := task(ctx); err != nil {
		logger.Log.Warn("Task failed",
			zap.String("worker_id", w.id),
			zap.Error(err))
	}
}

func (w *Worker) Stop() {
	logger.Log.Info("Closing worker",
		zap.String("worker_id", w.id))
	w.quit <- true
	close(w.quit)
}
