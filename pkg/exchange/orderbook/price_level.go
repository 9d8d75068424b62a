package orderbook

import "github.com/shopspring/decimal"

// priceLevel is the FIFO queue of resting orders at one exact price on one
// side. totalQty and orderCount are maintained incrementally so summaries
// never rescan the queue.
type priceLevel struct {
	price      decimal.Decimal
	head       *LimitOrder
	tail       *LimitOrder
	totalQty   decimal.Decimal
	orderCount int
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price, totalQty: decimal.Zero}
}

func (p *priceLevel) empty() bool { return p.head == nil }

// enqueue appends at the tail, preserving arrival order.
func (p *priceLevel) enqueue(o *LimitOrder) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.totalQty = p.totalQty.Add(o.Quantity)
	p.orderCount++
}

// dequeueFront removes the fully consumed order at the head of the queue.
func (p *priceLevel) dequeueFront() *LimitOrder {
	o := p.head
	if o == nil {
		return nil
	}
	p.head = o.next
	if p.head != nil {
		p.head.prev = nil
	} else {
		p.tail = nil
	}
	o.next = nil
	o.prev = nil
	p.totalQty = p.totalQty.Sub(o.Quantity)
	p.orderCount--
	return o
}

// reduceFront shrinks the head order in place. The order keeps its queue
// position: a partially filled remainder retains its original time priority.
func (p *priceLevel) reduceFront(by decimal.Decimal) {
	p.head.Quantity = p.head.Quantity.Sub(by)
	p.totalQty = p.totalQty.Sub(by)
}
