package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/edruela/volleyball-simulator/internal/adapters/mq/queue"
)

func job(id string) queue.Job {
	return queue.Job{RequestID: id, Seed: 1}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))

		Convey("Enqueued jobs come out in order", func() {
			So(q.Enqueue(ctx, job("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, job("b")), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			jobs := q.Dequeue(ctx)
			first := <-jobs
			second := <-jobs
			So(first.RequestID, ShouldEqual, "a")
			So(second.RequestID, ShouldEqual, "b")
		})

		Convey("A full queue rejects without blocking", func() {
			for i := 0; i < 4; i++ {
				So(q.Enqueue(ctx, job(fmt.Sprintf("j%d", i))), ShouldBeTrue)
			}
			So(q.Enqueue(ctx, job("overflow")), ShouldBeFalse)
			So(q.Len(ctx), ShouldEqual, 4)
		})
	})
}

func TestQueueClose(t *testing.T) {
	Convey("Given a queue being closed", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		So(q.Enqueue(ctx, job("a")), ShouldBeTrue)
		So(q.Close(), ShouldBeNil)

		Convey("Enqueue after close fails", func() {
			So(q.IsClosed(), ShouldBeTrue)
			So(q.Enqueue(ctx, job("b")), ShouldBeFalse)
		})

		Convey("Close is idempotent", func() {
			So(q.Close(), ShouldBeNil)
		})

		Convey("Drained jobs are still delivered, then the channel closes", func() {
			jobs := q.Dequeue(ctx)
			j, ok := <-jobs
			So(ok, ShouldBeTrue)
			So(j.RequestID, ShouldEqual, "a")

			select {
			case _, ok := <-jobs:
				So(ok, ShouldBeFalse)
			case <-time.After(time.Second):
				So("dequeue channel did not close", ShouldBeEmpty)
			}
		})
	})
}

func TestDequeueContextCancel(t *testing.T) {
	Convey("Given a dequeue bound to a cancellable context", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		ctx, cancel := context.WithCancel(context.Background())

		jobs := q.Dequeue(ctx)
		So(q.Enqueue(context.Background(), job("a")), ShouldBeTrue)

		j := <-jobs
		So(j.RequestID, ShouldEqual, "a")

		Convey("Cancelling stops delivery", func() {
			cancel()
			So(q.Enqueue(context.Background(), job("b")), ShouldBeTrue)

			select {
			case _, ok := <-jobs:
				// Either the channel closes or nothing arrives; a job may
				// race the cancellation once.
				if ok {
					So(q.Len(context.Background()), ShouldBeLessThanOrEqualTo, 1)
				}
			case <-time.After(100 * time.Millisecond):
				// No delivery after cancel is the expected quiet path.
			}
		})

		Reset(cancel)
	})
}
