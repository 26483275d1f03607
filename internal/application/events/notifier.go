// Package events publica mudanças de entidades para assinantes em processo.
// Substitui as assinaturas ao vivo do frontend: cada tela (ou teste) registra
// um callback e recebe o aviso de que a coleção mudou; o cancelamento é a
// função devolvida por Subscribe, chamada no teardown do consumidor.
package events

import "sync"

// Change aviso de mudança em uma entidade.
type Change struct {
	Entity string // ex.: "products", "sales"
	Action string // created | updated | status_changed
	ID     string
}

// Notifier fan-out de mudanças para os assinantes registrados.
// Os callbacks rodam de forma síncrona na goroutine que publica; assinantes
// lentos devem despachar para as suas próprias goroutines.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Change)
}

// NewNotifier constrói um notificador vazio.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registra o callback e devolve a função de cancelamento.
// Cancelar duas vezes é inofensivo.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish avisa todos os assinantes da mudança.
func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	fns := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
