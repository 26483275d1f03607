package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ─────────────────────────────────────────────────────────────────────────────
// Notifier: assinatura, publicação e cancelamento
// ─────────────────────────────────────────────────────────────────────────────

func TestNotifier_PublicaParaAssinantes(t *testing.T) {
	n := NewNotifier()

	var got []Change
	unsub := n.Subscribe(func(c Change) { got = append(got, c) })
	defer unsub()

	n.Publish(Change{Entity: "products", Action: "created", ID: "p1"})
	n.Publish(Change{Entity: "products", Action: "updated", ID: "p1"})

	assert.Len(t, got, 2)
	assert.Equal(t, "created", got[0].Action)
	assert.Equal(t, "updated", got[1].Action)
}

func TestNotifier_UnsubscribeParaDeReceber(t *testing.T) {
	n := NewNotifier()

	count := 0
	unsub := n.Subscribe(func(Change) { count++ })

	n.Publish(Change{Entity: "sales", Action: "created", ID: "s1"})
	unsub()
	n.Publish(Change{Entity: "sales", Action: "created", ID: "s2"})

	assert.Equal(t, 1, count)
}

func TestNotifier_UnsubscribeDuasVezesEhInofensivo(t *testing.T) {
	n := NewNotifier()
	unsub := n.Subscribe(func(Change) {})
	unsub()
	assert.NotPanics(t, func() { unsub() })
}

func TestNotifier_AssinantesIndependentes(t *testing.T) {
	n := NewNotifier()

	a, b := 0, 0
	unsubA := n.Subscribe(func(Change) { a++ })
	defer unsubA()
	unsubB := n.Subscribe(func(Change) { b++ })

	n.Publish(Change{Entity: "goals", Action: "created", ID: "g1"})
	unsubB()
	n.Publish(Change{Entity: "goals", Action: "updated", ID: "g1"})

	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}
