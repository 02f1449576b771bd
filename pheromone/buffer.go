package pheromone

// DepositBuffer accumulates deposits during the behavior pass and applies
// them in one batch afterwards. Deposits therefore take effect for the next
// tick's sampling, never the current one, which keeps a tick deterministic
// regardless of ant iteration order and lets the steering pass run with a
// strictly read-only view of the field.
type DepositBuffer struct {
	pending []pendingDeposit
}

type pendingDeposit struct {
	x, y   float32
	kind   Kind
	amount float32
}

// Add queues a deposit. Safe for one goroutine; in the parallel pass each
// worker owns its own buffer and the buffers are merged sequentially.
func (b *DepositBuffer) Add(x, y float32, kind Kind, amount float32) {
	if amount <= 0 {
		return
	}
	b.pending = append(b.pending, pendingDeposit{x: x, y: y, kind: kind, amount: amount})
}

// Flush applies all queued deposits to the field and resets the buffer.
func (b *DepositBuffer) Flush(f *Field) {
	for _, d := range b.pending {
		f.Deposit(d.x, d.y, d.kind, d.amount)
	}
	b.pending = b.pending[:0]
}

// Merge moves another buffer's deposits into this one.
func (b *DepositBuffer) Merge(other *DepositBuffer) {
	b.pending = append(b.pending, other.pending...)
	other.pending = other.pending[:0]
}

// Len returns the number of queued deposits.
func (b *DepositBuffer) Len() int {
	return len(b.pending)
}
