package astar

import (
	"vindinium/game"
)

type node struct {
	pos      game.Position
	cost     int // g: cost from the start
	priority int // f: cost plus heuristic
	seq      int // insertion order, breaks priority ties first-in-first-out
	parent   *node
}

// queue is a min-heap of nodes for container/heap.
type queue []*node

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *queue) Push(x any) {
	*q = append(*q, x.(*node))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
