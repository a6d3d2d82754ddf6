package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var e EventWithArg[*GameObject]
	var order []string
	e.AddListener(func(g *GameObject) { order = append(order, "first:"+g.Name) })
	e.AddListener(nil)
	e.AddListener(func(g *GameObject) { order = append(order, "second:"+g.Name) })

	e.Invoke(NewGameObject("Ball"))
	if len(order) != 2 || order[0] != "first:Ball" || order[1] != "second:Ball" {
		t.Errorf("Expected listeners in order [first:Ball second:Ball], got %v", order)
	}
}

func TestEventWithoutListeners(t *testing.T) {
	var e EventWithArg[int]
	e.Invoke(1) // must not panic
}
