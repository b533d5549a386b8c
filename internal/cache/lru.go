package cache

// lruNode carries its key so eviction can delete the owning map entry
// in O(1).
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders nodes from most recently used (front) to least
// recently used (back). The zero value is an empty list. Not safe for
// concurrent use; the owning shard's lock covers it.
type lruList[K comparable] struct {
	front *lruNode[K]
	back  *lruNode[K]
	size  int
}

func (l *lruList[K]) Len() int { return l.size }

// PushFront inserts a fresh node at the front and returns it for
// storage alongside the cached value.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	if l.front == nil {
		l.front = node
		l.back = node
	} else {
		node.next = l.front
		l.front.prev = node
		l.front = node
	}
	l.size++
	return node
}

// MoveToFront marks an existing node as most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == nil || node == l.front {
		return
	}
	l.unlink(node)
	node.next = l.front
	if l.front != nil {
		l.front.prev = node
	}
	l.front = node
	if l.back == nil {
		l.back = node
	}
	l.size++
}

// Remove takes a node out of the list.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	if node != nil {
		l.unlink(node)
	}
}

// PopBack removes the least recently used node and reports its key.
func (l *lruList[K]) PopBack() (K, bool) {
	if l.back == nil {
		var zero K
		return zero, false
	}
	node := l.back
	l.unlink(node)
	return node.key, true
}

// Clear empties the list.
func (l *lruList[K]) Clear() {
	l.front = nil
	l.back = nil
	l.size = 0
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.front = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.back = node.prev
	}
	node.prev = nil
	node.next = nil
	l.size--
}
