package floattheory

// Side marks which bound of a variable just tightened.
type Side int8

const (
	Lower Side = iota
	Upper
)

// workItem is a (variable, side) propagation task.
type workItem struct {
	v     *Variable
	which Side
}

// workQueue is a FIFO queue of propagation tasks with per-(variable,side)
// enqueue deduplication, so repeatedly tightening the same bound doesn't
// blow up the queue; the dedup flag is cleared on dequeue (spec §4.4.1,
// Design Notes §9: "a pair of booleans on each variable suffices").
type workQueue struct {
	items []workItem
}

func newWorkQueue() *workQueue { return &workQueue{} }

func (q *workQueue) push(v *Variable, which Side) {
	if which == Upper {
		if v.upperEnqueued {
			return
		}
		v.upperEnqueued = true
	} else {
		if v.lowerEnqueued {
			return
		}
		v.lowerEnqueued = true
	}
	q.items = append(q.items, workItem{v: v, which: which})
}

func (q *workQueue) pop() (workItem, bool) {
	if len(q.items) == 0 {
		return workItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	if item.which == Upper {
		item.v.upperEnqueued = false
	} else {
		item.v.lowerEnqueued = false
	}
	return item, true
}

func (q *workQueue) empty() bool { return len(q.items) == 0 }
