package spec

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

func (h NodeList) Length() int {
	return len(h)
}

// Item returns the node at index i or nil if i is out of range.
func (h NodeList) Item(i int) *Node {
	if i < 0 || i >= len(h) {
		return nil
	}
	return h[i]
}

// Contains returns the index of n in the list, or -1.
func (h NodeList) Contains(n *Node) int {
	for i := range h {
		if n == h[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) *Node {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

func (h *NodeList) Pop() *Node {
	if len(*h) == 0 {
		return nil
	}
	popped := (*h)[len(*h)-1]
	(*h)[len(*h)-1] = nil
	*h = (*h)[:len(*h)-1]
	return popped
}

// PopUntil pops nodes until one named first or one of rest has been popped.
// It returns that node, or nil if the list ran out.
func (h *NodeList) PopUntil(first string, rest ...string) *Node {
	var popped *Node
	for {
		popped = h.Pop()
		if popped == nil {
			return nil
		}

		if popped.NodeName == first {
			return popped
		}
		for _, tagName := range rest {
			if popped.NodeName == tagName {
				return popped
			}
		}
	}
}

// StackOfOpenElements is
// https://html.spec.whatwg.org/multipage/parsing.html#stack-of-open-elements
// The last entry is the current node.
type StackOfOpenElements struct {
	NodeList
}

func (s *StackOfOpenElements) Push(n *Node) {
	s.NodeList = append(s.NodeList, n)
}

// Current returns the innermost open element.
func (s *StackOfOpenElements) Current() *Node {
	return s.NodeList.Item(len(s.NodeList) - 1)
}

// Bottom returns the outermost open element, the html element once it exists.
func (s *StackOfOpenElements) Bottom() *Node {
	return s.NodeList.Item(0)
}

// PopUntilNode pops entries until n has been popped.
func (s *StackOfOpenElements) PopUntilNode(n *Node) {
	for {
		popped := s.Pop()
		if popped == nil || popped == n {
			return
		}
	}
}

// Includes reports whether an element named name is anywhere on the stack.
func (s *StackOfOpenElements) Includes(name string) bool {
	for _, n := range s.NodeList {
		if n.NodeName == name {
			return true
		}
	}
	return false
}

var defaultScope = []string{
	"applet",
	"caption",
	"html",
	"table",
	"td",
	"th",
	"marquee",
	"object",
	"template",
	"mi",
	"mo",
	"mn",
	"ms",
	"mtext",
	"annotation-xml",
	"foreignObject",
	"desc",
	"title",
}

var listItemScope = append([]string{"ol", "ul"}, defaultScope...)

var buttonScope = append([]string{"button"}, defaultScope...)

var tableScope = []string{"html", "table", "template"}

func (s *StackOfOpenElements) elementInSpecificScope(names []string, boundary []string) bool {
	for i := len(s.NodeList) - 1; i >= 0; i-- {
		entry := s.NodeList[i]
		for _, name := range names {
			if entry.NodeName == name {
				return true
			}
		}

		for _, name := range boundary {
			if entry.NodeName == name {
				return false
			}
		}
	}

	return false
}

// ContainsElementInScope is
// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-scope
func (s *StackOfOpenElements) ContainsElementInScope(name string) bool {
	return s.elementInSpecificScope([]string{name}, defaultScope)
}

// ContainsElementsInScope reports whether any of names is in scope.
func (s *StackOfOpenElements) ContainsElementsInScope(names ...string) bool {
	return s.elementInSpecificScope(names, defaultScope)
}

func (s *StackOfOpenElements) ContainsElementInListItemScope(name string) bool {
	return s.elementInSpecificScope([]string{name}, listItemScope)
}

func (s *StackOfOpenElements) ContainsElementInButtonScope(name string) bool {
	return s.elementInSpecificScope([]string{name}, buttonScope)
}

func (s *StackOfOpenElements) ContainsElementInTableScope(name string) bool {
	return s.elementInSpecificScope([]string{name}, tableScope)
}
